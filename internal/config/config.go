package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	JWTSecret string
	TokenTTL  time.Duration

	DataDir      string
	ArticlesFile string
	UsersFile    string

	AdminUsername string
	AdminPassword string
	AdminRole     string

	CORSOrigins []string

	LoginRateLimit  int
	LoginRateWindow time.Duration
}

func Load() Config {
	// Best effort: a missing .env is fine, real env vars win either way.
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 3000)
	dataDir := getEnv("DATA_DIR", "data")

	return Config{
		Env:  env,
		Port: port,

		JWTSecret: getEnv("JWT_SECRET", "your-super-secret-key-change-this"),
		TokenTTL:  24 * time.Hour,

		DataDir:      dataDir,
		ArticlesFile: filepath.Join(dataDir, "articles.json"),
		UsersFile:    filepath.Join(dataDir, "users.json"),

		AdminUsername: getEnv("ADMIN_USERNAME", "Hellena"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminRole:     getEnv("ADMIN_ROLE", "admin"),

		CORSOrigins: getEnvList("CORS_ORIGINS", "http://localhost:3000"),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: time.Duration(getEnvInt("LOGIN_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func (c Config) IsDev() bool {
	return c.Env == "dev"
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
