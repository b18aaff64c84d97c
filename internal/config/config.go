package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env              string
	HTTPPort         string
	RedisAddr        string
	QueueBackend     string
	QueueKey         string
	RateLimitPerMin  int
	StatusClearAfter time.Duration
	TimestampLayout  string
	Location         *time.Location
	StaticDir        string
}

// Load reads an optional .env file, then returns the config populated from
// environment variables with defaults.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: reading .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() App {
	return App{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPPort:         getEnv("HTTP_PORT", "8081"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		QueueBackend:     getEnv("QUEUE_BACKEND", "memory"),
		QueueKey:         getEnv("QUEUE_KEY", "attendance:events"),
		RateLimitPerMin:  intEnv("RATE_LIMIT_PER_MIN", 30),
		StatusClearAfter: durationEnv("STATUS_CLEAR_AFTER", 3*time.Second),
		TimestampLayout:  getEnv("TIMESTAMP_LAYOUT", "1/2/2006, 3:04:05 PM"),
		Location:         locationEnv("TIMEZONE", time.Local),
		StaticDir:        getEnv("STATIC_DIR", "web/static"),
	}
}

// Production reports whether the app runs in release mode.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil || d <= 0 {
			log.Printf("invalid duration for %s: %q, using fallback %s", key, val, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}

func locationEnv(key string, fallback *time.Location) *time.Location {
	if val := os.Getenv(key); val != "" {
		loc, err := time.LoadLocation(val)
		if err != nil {
			log.Printf("invalid timezone for %s: %v, using %s", key, err, fallback)
			return fallback
		}
		return loc
	}
	return fallback
}
