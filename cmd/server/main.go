package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nlitteri/taller-app/internal/config"
	"github.com/nlitteri/taller-app/internal/db"
	"github.com/nlitteri/taller-app/internal/logger"
	"github.com/nlitteri/taller-app/internal/server"

	"github.com/joho/godotenv"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Get()

	for _, dir := range []string{cfg.UploadDir, cfg.BackupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.WithError(err).WithField("dir", dir).Fatal("cannot create directory")
		}
	}

	// Backup antes de tocar el esquema. Si la base todavía no existe, Backup
	// devuelve vacío y no pasa nada.
	if path, err := db.Backup(cfg.DBPath, cfg.BackupDir); err != nil {
		log.WithError(err).Warn("startup backup failed")
	} else if path != "" {
		log.WithField("path", path).Info("startup backup written")
	}

	dbConn, err := db.ConnectAndMigrate(cfg)
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}

	if *migrateOnlyFlag {
		log.Info("migrations completed")
		return
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(dbConn, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).WithField("env", cfg.Env).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	log.Info("server stopped")
}
