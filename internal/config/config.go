package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the backend needs.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Weather   WeatherConfig
	News      NewsConfig
	Speech    SpeechConfig
	Assistant AssistantConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	speech, err := loadSpeechConfig()
	if err != nil {
		return nil, err
	}

	assistant, err := loadAssistantConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		AI:        ai,
		Weather:   loadWeatherConfig(),
		News:      loadNewsConfig(),
		Speech:    speech,
		Assistant: assistant,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// LoopbackAddr returns a dialable host:port for this listener. Wildcard and
// empty hosts become the loopback address.
func (c ServerConfig) LoopbackAddr() string {
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return c.Addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	// Accept ":8080" or "127.0.0.1:8080" directly.
	if host, portPart, err := net.SplitHostPort(port); err == nil {
		if !validPort(portPart) {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		return ServerConfig{Addr: net.JoinHostPort(host, portPart)}, nil
	}

	if !validPort(port) {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func validPort(port string) bool {
	n, err := strconv.Atoi(port)
	return err == nil && n > 0 && n <= 65535
}

// AIConfig describes the Ark chat model behind the conversation capability.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel creates a model instance from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark credentials or model missing: set ARK_API_KEY + ARK_MODEL, or the AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// WeatherConfig describes the OpenWeatherMap upstream.
type WeatherConfig struct {
	APIKey  string
	City    string
	BaseURL string
}

// Enabled reports whether the upstream key is present.
func (c WeatherConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadWeatherConfig() WeatherConfig {
	return WeatherConfig{
		APIKey:  strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		City:    getEnvOrDefault("WEATHER_CITY", "Porto"),
		BaseURL: getEnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
	}
}

// NewsConfig describes the NewsAPI upstream.
type NewsConfig struct {
	APIKey       string
	Queries      []string
	Categories   []string
	MaxHeadlines int
	BaseURL      string
}

// Enabled reports whether the upstream key is present.
func (c NewsConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadNewsConfig() NewsConfig {
	queries := splitList(getEnvOrDefault("NEWS_QUERIES",
		"portugal football,benfica porto sporting,premier league champions league"))
	categories := splitList(getEnvOrDefault("NEWS_CATEGORIES", "sports,technology"))

	return NewsConfig{
		APIKey:       strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		Queries:      queries,
		Categories:   categories,
		MaxHeadlines: 8,
		BaseURL:      getEnvOrDefault("NEWS_BASE_URL", "https://newsapi.org/v2"),
	}
}

// SpeechConfig describes the mirror's synthesis endpoint.
type SpeechConfig struct {
	SynthesisURL string
	DefaultVoice string
	Timeout      time.Duration
	Enabled      bool
}

func loadSpeechConfig() (SpeechConfig, error) {
	timeout, err := parseOptionalIntEnv("SPEECH_TIMEOUT")
	if err != nil {
		return SpeechConfig{}, err
	}
	timeoutSeconds := 10
	if timeout != nil && *timeout > 0 {
		timeoutSeconds = *timeout
	}

	url := strings.TrimSpace(os.Getenv("SPEECH_TTS_URL"))

	return SpeechConfig{
		SynthesisURL: url,
		DefaultVoice: getEnvOrDefault("SPEECH_TTS_VOICE", "en-us-standard"),
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
		Enabled:      url != "",
	}, nil
}

// AssistantConfig tunes the dispatcher and its capability clients.
type AssistantConfig struct {
	// CapabilityBaseURL points the capability clients at a remote backend.
	// Empty means loop back to this server's own /api routes.
	CapabilityBaseURL string
	RequestTimeout    time.Duration
	RefreshInterval   time.Duration
}

func loadAssistantConfig() (AssistantConfig, error) {
	timeout, err := parseOptionalIntEnv("ASSISTANT_TIMEOUT")
	if err != nil {
		return AssistantConfig{}, err
	}
	timeoutSeconds := 8
	if timeout != nil && *timeout > 0 {
		timeoutSeconds = *timeout
	}

	refresh, err := parseOptionalIntEnv("WEATHER_REFRESH_INTERVAL")
	if err != nil {
		return AssistantConfig{}, err
	}
	refreshSeconds := 300
	if refresh != nil && *refresh > 0 {
		refreshSeconds = *refresh
	}

	return AssistantConfig{
		CapabilityBaseURL: strings.TrimSpace(os.Getenv("ASSISTANT_CAPABILITY_URL")),
		RequestTimeout:    time.Duration(timeoutSeconds) * time.Second,
		RefreshInterval:   time.Duration(refreshSeconds) * time.Second,
	}, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
