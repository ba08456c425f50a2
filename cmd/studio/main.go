// Command studio serves the generation API.
//
// Configuration comes from flags plus an optional .env file:
//
//	STUDIO_FAL_KEY       API key for the generation service
//	STUDIO_FAL_ENDPOINT  override the generation endpoint
//
// Without a key the server runs in mock mode and serves placeholder
// results, which is enough to develop a frontend against.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gogpu/studio/generate"
	"github.com/gogpu/studio/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	envFile := flag.String("env", ".env", "env file to load (missing file is fine)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		logger.Warn("env file not loaded", "file", *envFile, "error", err)
	}

	opts := []server.Option{server.WithLogger(logger)}
	if key := os.Getenv("STUDIO_FAL_KEY"); key != "" {
		genOpts := []generate.ClientOption{
			generate.WithKey(key),
			generate.WithLogger(logger),
		}
		if ep := os.Getenv("STUDIO_FAL_ENDPOINT"); ep != "" {
			genOpts = append(genOpts, generate.WithEndpoint(ep))
		}
		opts = append(opts, server.WithClient(generate.NewClient(genOpts...)))
		logger.Info("generation client configured")
	} else {
		logger.Info("no STUDIO_FAL_KEY set, serving mock generations")
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: server.New(opts...).Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
}
