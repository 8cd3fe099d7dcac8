package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coutupro/internal/app"
	"coutupro/internal/handlers"
	"coutupro/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	app, err := app.New()
	if err != nil {
		return err
	}
	defer app.Close()

	logger.Setup(app.Config.LogLevel, app.Config.LogFormat)
	log := logger.New("main").Function("run")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.AlertScheduler.Start(ctx); err != nil {
		return log.Err("failed to start alert scheduler", err)
	}

	server := handlers.NewServer(app)

	errs := make(chan error, 1)
	go func() {
		address := fmt.Sprintf(":%d", app.Config.ServerPort)
		log.Info("Starting server", "address", address, "environment", app.Config.Environment)
		errs <- server.Listen(address)
	}()

	select {
	case err := <-errs:
		return log.Err("server stopped", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		return log.Err("failed to shut down server", err)
	}
	return nil
}
