package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/loworbit/ships-mp/config"
	"github.com/loworbit/ships-mp/logging"
	"github.com/loworbit/ships-mp/server/core"
)

func main() {
	conf, err := config.LoadServer()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(conf.LogFile)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := core.NewHub(conf.Step, logger)
	go hub.Run(ctx, conf.TickRate)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: conf.Addr, Handler: mux}
	go func() {
		logger.Infow("listening", "addr", conf.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
