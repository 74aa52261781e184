package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/jmar008/dealaai/internal/config"
	"github.com/jmar008/dealaai/internal/handler"
	"github.com/jmar008/dealaai/internal/infrastructure/assistant"
	infradb "github.com/jmar008/dealaai/internal/infrastructure/database"
	"github.com/jmar008/dealaai/internal/router"
	"github.com/jmar008/dealaai/internal/usecase"
	dbpkg "github.com/jmar008/dealaai/pkg/database"
	"github.com/jmar008/dealaai/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "dealaai-server",
	Short: "DealaAI API server for dealership stock and assistant chat",
	Long: `DealaAI API server is an HTTP API built with the Hertz framework.
It serves dealership authentication, vehicle stock queries, and the
AI sales assistant chat.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("DealaAI API server starting...",
		"version", version,
		"config", cfgFile,
	)

	// Route Hertz's own logging through slog
	hertzLogger := logger.NewHertzSlogAdapter(slog.Default())
	hlog.SetLogger(hertzLogger)
	hlog.SetLevel(hlog.LevelInfo)

	db, err := dbpkg.NewDB(cfg.Database, slog.Default())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	slog.Info("database connected successfully")

	userRepo := infradb.NewUserRepository(db)
	authUsecase := usecase.NewAuthUsecase(userRepo, slog.Default())
	userHandler := handler.NewUserHandler(authUsecase, cfg.JWT.Secret, slog.Default())

	stockRepo := infradb.NewStockRepository(db)
	stockUsecase := usecase.NewStockUsecase(stockRepo, slog.Default())
	stockHandler := handler.NewStockHandler(stockUsecase, slog.Default())

	assistantClient := assistant.NewClient(cfg.Assistant, slog.Default())
	chatRepo := infradb.NewChatRepository(db)
	chatUsecase := usecase.NewChatUsecase(assistantClient, chatRepo, userRepo, stockRepo, slog.Default())
	chatHandler := handler.NewChatHandler(chatUsecase, slog.Default())

	healthHandler := handler.NewHealthHandler(db)

	slog.Info("handlers initialized")

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.GetReadTimeout()),
		server.WithWriteTimeout(cfg.GetWriteTimeout()),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
	)

	router.Setup(h, userHandler, stockHandler, chatHandler, healthHandler)

	slog.Info("server started successfully",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	if err := db.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	} else {
		slog.Info("database closed successfully")
	}

	slog.Info("server stopped gracefully")
}
