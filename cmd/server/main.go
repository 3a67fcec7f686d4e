package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studyflow/back/internal/api/handlers"
	"github.com/studyflow/back/internal/api/routes"
	"github.com/studyflow/back/internal/clients"
	"github.com/studyflow/back/internal/config"
	"github.com/studyflow/back/internal/logger"
	"github.com/studyflow/back/internal/prompts"
	"github.com/studyflow/back/internal/services"
	"github.com/studyflow/back/internal/utils"
)

var (
	configFile string
	portFlag   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "studyflow",
		Short:        "Study recommendation and credential-shielding proxy backend",
		SilenceUsage: true,
		RunE:         runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)

	return rootCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if portFlag != "" {
		cfg.Server.Port = portFlag
	}

	zl, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zl.Sync()

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: buildRouter(cfg, zl),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("studyflow backend starting",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Env),
			zap.Bool("ai_enabled", cfg.AIEnabled()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func buildRouter(cfg *config.Config, zl *zap.Logger) http.Handler {
	canvasClient := clients.NewCanvasClient(nil, cfg.Canvas.Timeout, zl.Named("canvas"))
	llmClient := clients.NewOpenAIClient(clients.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.OpenAI.Timeout,
	}, zl.Named("openai"))

	promptLoader := utils.NewPromptLoader(prompts.FS)

	recommendationService := services.NewRecommendationService()
	intervalService := services.NewIntervalService()
	canvasService := services.NewCanvasService(canvasClient, zl.Named("canvas"))
	aiService := services.NewAIService(llmClient, promptLoader, zl.Named("ai"))

	return routes.NewRouter(routes.Handlers{
		Predict: handlers.NewPredictHandler(recommendationService, intervalService),
		Canvas:  handlers.NewCanvasHandler(canvasService, zl.Named("canvas")),
		AI:      handlers.NewAIHandler(aiService, zl.Named("ai")),
		Health:  handlers.NewHealthHandler(aiService.Enabled()),
	}, cfg.CORS.AllowedOrigin, zl.Named("http"))
}
