package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/avetisdav94/TarotBot/internal/adapters/catalog"
	"github.com/avetisdav94/TarotBot/internal/adapters/history"
	httpadapter "github.com/avetisdav94/TarotBot/internal/adapters/http"
	"github.com/avetisdav94/TarotBot/internal/adapters/llm/groq"
	"github.com/avetisdav94/TarotBot/internal/adapters/telegram"
	"github.com/avetisdav94/TarotBot/internal/app"
	"github.com/avetisdav94/TarotBot/internal/config"
)

const version = "1.0.0"

// stdRNG delegates to math/rand (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.Intn(n) }

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Reference data is loaded once; broken catalogs refuse to start.
	catalogStore, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load catalogs", "error", err)
		os.Exit(1)
	}

	historyStore, err := history.NewStore(cfg.HistoryDir, logger)
	if err != nil {
		logger.Error("failed to init history store", "error", err)
		os.Exit(1)
	}

	llmClient := groq.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.GroqAPIKey,
		cfg.GroqBaseURL,
		cfg.GroqModel,
		app.SystemPrompt,
		logger,
	)

	sessions := app.NewSessionRegistry(app.SessionTTL, logger)
	parser := app.NewCardParser(catalogStore)
	readingSvc := app.NewReadingService(sessions, parser, llmClient, historyStore, logger)
	drawSvc := app.NewDrawService(catalogStore, stdRNG{})

	bot, err := telegram.New(
		cfg.TelegramToken,
		catalogStore,
		catalogStore,
		readingSvc,
		drawSvc,
		historyStore,
		logger,
	)
	if err != nil {
		logger.Error("failed to start telegram bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.RunSweeper(ctx, app.SweepInterval)

	go func() {
		logger.Info("bot started", "username", bot.Username())
		bot.Run(ctx)
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(version)
	handler.Register(e)

	go func() {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
