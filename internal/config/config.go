package config

import (
	"os"
	"strconv"
)

// Config reúne los knobs de entorno de la aplicación.
// Precedencia: env var explícita > archivo .env (lo carga main) > default.
type Config struct {
	Port          string
	DBPath        string
	UploadDir     string
	BackupDir     string
	MaxUploadMB   int64
	AdminPassword string
	Env           string
}

// SESSION_SECRET lo lee el paquete auth directamente; acá sólo viven los knobs
// que consumen main y los handlers.

func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DBPath = getEnv("DB_PATH", "database.db")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "static/uploads")
	cfg.BackupDir = getEnv("BACKUP_DIR", "backups")
	cfg.MaxUploadMB = getEnvInt64("MAX_UPLOAD_MB", 16)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "1234")
	cfg.Env = getEnv("APP_ENV", "development")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}
