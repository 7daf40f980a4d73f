package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felisterpaul/shecodes-blog/internal/auth"
	"github.com/felisterpaul/shecodes-blog/internal/config"
	httpx "github.com/felisterpaul/shecodes-blog/internal/http"
	"github.com/felisterpaul/shecodes-blog/internal/observability"
	"github.com/felisterpaul/shecodes-blog/internal/repo/file"
	"github.com/felisterpaul/shecodes-blog/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// data dir must exist before anything touches the stores
	err := storage.EnsureDir(cfg.DataDir)

	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// flat-file stores
	usersRepo := file.NewUsersRepo(cfg.UsersFile, prom)
	articlesRepo := file.NewArticlesRepo(cfg.ArticlesFile, prom)

	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)
	defer cancelSeed()

	err = file.EnsureDefaultAdmin(seedCtx, usersRepo, cfg)

	if err != nil {
		log.Error("seeding admin user failed", "err", err)
		os.Exit(1)
	}

	err = file.EnsureStarterArticles(seedCtx, articlesRepo, cfg)

	if err != nil {
		log.Error("seeding starter articles failed", "err", err)
		os.Exit(1)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// set up routers with the log
	router := httpx.NewRouter(log, cfg, usersRepo, articlesRepo, jwtManager, prom, reg)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctxTimeOut := 10 * time.Second

		ctx, cancel := config.WithTimeout(ctxTimeOut)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
