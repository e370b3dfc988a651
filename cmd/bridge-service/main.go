package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bridgeconfig "golang-lean-bridge/internal/bridge/config"
	delivery "golang-lean-bridge/internal/bridge/delivery/http"
	"golang-lean-bridge/internal/bridge/repository"
	"golang-lean-bridge/internal/bridge/service"
	"golang-lean-bridge/internal/entity"
	"golang-lean-bridge/pkg/execkit"
	"golang-lean-bridge/pkg/logger"
	"golang-lean-bridge/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the LEAN bridge service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := bridgeconfig.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting LEAN Bridge Service", logger.Field("name", cfg.App.Name))

	// Load risk settings once; they are read-only for the process lifetime.
	riskSettings, err := entity.LoadRiskSettings(cfg.Risk.SettingsPath)
	if err != nil {
		appLogger.Fatal("Failed to load risk settings", logger.ErrorField(err))
	}
	appLogger.Info("Loaded risk settings",
		logger.IntField("allowed_symbols", len(riskSettings.AllowedSymbols)))

	// Initialize Gemini client
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
	}

	// Initialize repositories
	parserRepo, err := repository.NewGeminiParserRepository(cfg, appLogger, genAiClient)
	if err != nil {
		appLogger.Fatal("Failed to initialize strategy parser", logger.ErrorField(err))
	}

	runner := execkit.NewCommandRunner(cfg.Lean.CommandTimeout, appLogger)
	localRepo := repository.NewLeanCLIRepository(cfg, appLogger, runner)
	cloudRepo := repository.NewLeanCloudRepository(cfg, appLogger, runner)

	// Initialize Telegram notifier
	notifier := telegram.NewNoopNotifier()
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	toolsSvc := service.NewToolsService(parserRepo, localRepo, cloudRepo, riskSettings, notifier, appLogger)
	resourcesSvc := service.NewResourcesService(riskSettings, appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewRequestValidator()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
	})

	// Initialize handlers and routes
	toolHandler := delivery.NewToolHandler(toolsSvc, appLogger)
	toolHandler.RegisterRoutes(e.Group("/tools"))

	resourceHandler := delivery.NewResourceHandler(resourcesSvc, appLogger)
	resourceHandler.RegisterRoutes(e.Group("/resources"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "bridge-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-bridge.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing bridge-service CLI: %s\n", err)
		os.Exit(1)
	}
}
