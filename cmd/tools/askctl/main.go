// Command askctl is a console client for the assistant API. It reads one
// utterance per line from stdin, posts it to the backend and prints the
// settled reply with its mood.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type message struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

type sessionView struct {
	Messages []message `json:"messages"`
	Mood     string    `json:"mood"`
	Weather  string    `json:"weather,omitempty"`
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8080", "backend base URL")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}
	endpoint := strings.TrimRight(*baseURL, "/") + "/api/assistant/message"

	fmt.Println("type a message and press enter (ctrl-d to quit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		view, err := send(client, endpoint, scanner.Text())
		if err != nil {
			log.Printf("request failed: %v", err)
			continue
		}

		if len(view.Messages) == 0 {
			continue
		}
		last := view.Messages[len(view.Messages)-1]
		if last.Sender != "assistant" {
			continue
		}
		fmt.Printf("[%s] %s\n", view.Mood, last.Text)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}

func send(client *http.Client, endpoint, text string) (*sessionView, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var view sessionView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, err
	}
	return &view, nil
}
