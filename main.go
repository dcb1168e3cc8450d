package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lpernett/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/Sentira-Labs/sentira-go-sdk/classifier"
	"github.com/Sentira-Labs/sentira-go-sdk/handlers"
	"github.com/Sentira-Labs/sentira-go-sdk/store"
	"github.com/Sentira-Labs/sentira-go-sdk/utils"
)

// Load environment variables from .env file
func init() {
	log.Info("Loading environment variables")
	err := godotenv.Load()
	if err != nil {
		log.Warn("Error loading .env file")
	}
}

func main() {
	// Set up logging
	log.SetLevel(log.DebugLevel)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	log.Info("Server Version: Sentira Wellness Engine V1")

	// Session handlers log through zap with per-session context
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	// Set up Redis connection
	redisClient := redis.NewClient(&redis.Options{
		Addr:        os.Getenv("REDIS_HOST"),
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          0,
		DialTimeout: 20 * time.Second, // initial connection timeout
	})

	redisCtx, cancelRedis := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelRedis()

	_, err = redisClient.Ping(redisCtx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Info("Successfully connected to Redis")

	analysisStore := store.NewAnalysisStore(redisClient, log.StandardLogger())

	registry := buildClassifierRegistry()

	deps := handlers.Deps{
		Registry: registry,
		Store:    analysisStore,
		Redis:    redisClient,
	}

	// Define HTTP routes
	http.HandleFunc("/healthz", handlers.HealthCheckHandler)
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/analyze/text", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleTextAnalysis(w, r, deps)
	})
	http.HandleFunc("/analyze/voice", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleVoiceAnalysis(w, r, deps)
	})
	http.HandleFunc("/analyze/image", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleImageAnalysis(w, r, deps)
	})
	http.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleHistory(w, r, deps)
	})
	http.HandleFunc("/realtime", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleRealtimeSession(w, r, deps)
	})

	// Set up signal handling
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverExit := make(chan struct{})

	// Start HTTP server in a goroutine
	go func() {
		port := ":" + os.Getenv("PORT")
		if port == ":" {
			port = ":8080"
		}
		log.Info("Starting server on...", port)
		log.Fatal(http.ListenAndServe(port, nil))
		close(serverExit)
	}()

	// On termination, close all connections and shut down the server
	select {
	case <-stop:
		log.Info("Shutting down server...")
	case <-serverExit:
		log.Info("Server exited unexpectedly...")
	}

	log.Info("Server shut down gracefully")
}

// buildClassifierRegistry wires whichever classifier backends the
// environment configures. The mock classifier always registers so the
// service stays usable (degraded, clearly labeled) without any backend.
func buildClassifierRegistry() *classifier.Registry {
	logger := log.StandardLogger()

	defaultProvider := os.Getenv("DEFAULT_CLASSIFIER")
	if defaultProvider == "" {
		defaultProvider = "text-transformer"
	}

	registry := classifier.NewRegistry(logger, defaultProvider)

	textClassifier := classifier.NewTextClassifier(os.Getenv("EMOTION_API_URL"), logger)
	if err := registry.Register(textClassifier); err != nil {
		log.Warn("Text classifier not available, text analyses will be indeterminate")
	}

	if transcriber := utils.NewDeepgramTranscriber(os.Getenv("DEEPGRAM_LANGUAGE")); transcriber != nil {
		voiceClassifier := classifier.NewVoiceClassifier(transcriber, textClassifier, logger)
		if err := registry.Register(voiceClassifier); err != nil {
			log.Warn("Voice classifier not available, voice analyses will be indeterminate")
		}
	}

	if openaiClient := utils.NewOpenAIClient(); openaiClient != nil {
		visionClassifier := classifier.NewVisionClassifier(openaiClient, logger)
		if err := registry.Register(visionClassifier); err != nil {
			log.Warn("Vision classifier not available, image analyses will be indeterminate")
		}
	}

	if os.Getenv("ENABLE_MOCK_CLASSIFIER") == "true" {
		if err := registry.Register(classifier.NewMockClassifier(logger)); err != nil {
			log.Warn("Mock classifier failed to register")
		}
	}

	return registry
}
