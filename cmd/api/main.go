package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmoreira/alfredo/backend/internal/capability/conversation"
	"github.com/dmoreira/alfredo/backend/internal/capability/news"
	"github.com/dmoreira/alfredo/backend/internal/capability/weather"
	"github.com/dmoreira/alfredo/backend/internal/config"
	"github.com/dmoreira/alfredo/backend/internal/handler"
	capabilityHandler "github.com/dmoreira/alfredo/backend/internal/handler/capability"
	voiceModel "github.com/dmoreira/alfredo/backend/internal/model/voice"
	"github.com/dmoreira/alfredo/backend/internal/service/ai"
	"github.com/dmoreira/alfredo/backend/internal/service/assistant"
	newsService "github.com/dmoreira/alfredo/backend/internal/service/news"
	"github.com/dmoreira/alfredo/backend/internal/service/session"
	"github.com/dmoreira/alfredo/backend/internal/service/speech"
	weatherService "github.com/dmoreira/alfredo/backend/internal/service/weather"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	voices := voiceModel.NewMemoryStore(voiceModel.Seed())

	// Capability services. Each is left nil when its upstream provider is
	// not configured; the handlers degrade per endpoint.
	var weatherSvc capabilityHandler.WeatherService
	if cfg.Weather.Enabled() {
		weatherSvc = weatherService.NewService(cfg.Weather, cfg.Assistant.RequestTimeout)
		log.Println("weather service initialized")
	} else {
		log.Println("OPENWEATHER_API_KEY not set, weather endpoint disabled")
	}

	var newsSvc capabilityHandler.NewsService
	if cfg.News.Enabled() {
		newsSvc = newsService.NewService(cfg.News, cfg.Assistant.RequestTimeout)
		log.Println("news service initialized")
	} else {
		log.Println("NEWS_API_KEY not set, news endpoint disabled")
	}

	var aiSvc capabilityHandler.AIService
	if cfg.AI.Enabled() {
		svc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without conversational replies")
		} else {
			aiSvc = svc
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI initialization")
	}

	// Capability clients consumed by the dispatcher. By default they loop
	// back to this process's own /api routes.
	capabilityBase := cfg.Assistant.CapabilityBaseURL
	if capabilityBase == "" {
		capabilityBase = "http://" + cfg.Server.LoopbackAddr() + "/api"
	}
	timeout := cfg.Assistant.RequestTimeout
	weatherCap := weather.NewClient(capabilityBase, timeout)
	newsCap := news.NewClient(capabilityBase, timeout)
	chatCap := conversation.NewClient(capabilityBase, timeout)

	var speaker speech.Speaker = speech.NoopSpeaker{}
	if cfg.Speech.Enabled {
		speaker = speech.NewHTTPSpeaker(cfg.Speech.SynthesisURL, cfg.Speech.Timeout)
		log.Println("speech forwarding enabled")
	}

	store := session.NewStore()
	dispatcher := assistant.NewDispatcher(store, weatherCap, newsCap, chatCap, speaker)
	dispatcher.SelectVoice(cfg.Speech.DefaultVoice)

	refresher := assistant.NewRefresher(weatherCap, cfg.Assistant.RefreshInterval)
	go refresher.Run(ctx)

	router := handler.NewRouter(dispatcher, refresher, voices, weatherSvc, newsSvc, aiSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Alfredo backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
