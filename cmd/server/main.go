package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/api"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/config"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/core"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/logger"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/store"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/web"
)

func main() {
	config.LoadConfig()

	log := logger.New(config.AppConfig.LogLevel, config.AppConfig.LogFormat)
	defer log.Sync()

	// Load the employee dataset up front. A missing or malformed file is
	// fatal: every page and endpoint depends on it.
	table, err := dataset.Load(config.AppConfig.DatasetPath)
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			log.Fatal("failed to load dataset",
				zap.String("path", loadErr.Path),
				zap.String("reason", loadErr.Reason),
				zap.Error(err))
		}
		log.Fatal("failed to load dataset", zap.Error(err))
	}
	log.Info("dataset loaded",
		zap.String("path", config.AppConfig.DatasetPath),
		zap.Int("employees", len(table)))

	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer dbStore.Close()

	// The assistant is optional: without an API key the dashboard still
	// serves every report, and chats receive a visible notice instead.
	var llmService *core.LLMService
	if config.AppConfig.GeminiAPIKey != "" {
		llmService, err = core.NewLLMService(log)
		if err != nil {
			log.Fatal("failed to initialize LLM client", zap.Error(err))
		}
		defer llmService.Close()
	} else {
		log.Warn("GEMINI_API_KEY not set, chat assistant disabled")
	}

	reportService := core.NewReportService(table, log)
	chatService := core.NewChatService(dbStore, llmService, reportService, log)

	apiHandler := api.NewAPIHandler(chatService, reportService, log)
	webServer := web.NewServer(reportService, log)
	router := api.NewRouter(apiHandler, webServer.Handler())

	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not listen", zap.String("addr", serverAddr), zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}
