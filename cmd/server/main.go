// @title           Chat Token API
// @version         1.0
// @description     Webhook endpoint issuing signed access tokens for the chat SDK.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /
// @schemes http https
//
// Package main содержит точку входа сервера выдачи токенов для чата.
//
// Пакет отвечает за:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации из ./configs/server.yaml (или только из окружения, если файла нет);
//   - создание логгера, сервисов, HTTP-обработчиков и роутера;
//   - запуск HTTP(S)-сервера с заданными таймаутами;
//   - корректное (graceful) завершение по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-chat-token/internal/server/api"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/config"
	h "github.com/IvanChernomyrdin/go-chat-token/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-chat-token/internal/server/service"
	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-chat-token/swagger/docs"
)

const configPath = "./configs/server.yaml"

func main() {
	bootLog := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		bootLog.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		bootLog.Fatal(err)
	}

	httpLogger := logger.New(logger.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	// сервис + хандлер + роутер
	svc := service.NewServices(cfg)
	handler := api.NewHandler(svc, httpLogger)
	handler.MaxBodyBytes = cfg.Server.MaxBodyBytes
	router := h.NewRouter(handler, cfg)

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%t)", addr, cfg.TLS.Enabled)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

// loadConfig читает server.yaml, а если его нет — собирает конфиг из окружения.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return config.LoadFromEnv()
	}
	return config.Load(configPath)
}
