package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	ServiceURL     string
	FeedURL        string
	FeedTopic      string
	Floors         int
	Elevators      int
	ReconnectDelay time.Duration
	RequestTimeout time.Duration
	CallTimeout    time.Duration
	Origin         string
	DatabaseURL    string
	DatabaseType   string
	Retention      time.Duration
	EnvFile        string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("lift-view", flag.ContinueOnError)

	// Gateway
	fs.IntVar(&cfg.Port, "p", 0, "Gateway port")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Dotenv file to load (missing file is ignored)")

	// Elevator service
	fs.StringVar(&cfg.ServiceURL, "s", "", "Elevator service base URL")
	fs.StringVar(&cfg.FeedURL, "w", "", "Broadcast WebSocket URL (default derived from service URL)")
	fs.StringVar(&cfg.FeedTopic, "topic", "", "Broadcast topic")
	fs.StringVar(&cfg.Origin, "origin", "", "Origin header sent to the service")

	// Building
	fs.IntVar(&cfg.Floors, "floors", 0, "Number of floors")
	fs.IntVar(&cfg.Elevators, "elevators", 0, "Cars shown before the first snapshot")

	// Timing
	fs.DurationVar(&cfg.ReconnectDelay, "reconnect", 0, "Delay between reconnection attempts")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", 0, "Outbound request timeout")
	fs.DurationVar(&cfg.CallTimeout, "call-timeout", -1, "Drop unconfirmed hall calls after this long (0 disables)")

	// Journal
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Journal database URL (optional)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Journal database type (sqlite or postgres)")
	fs.DurationVar(&cfg.Retention, "retention", -1, "Prune journal rows older than this (0 keeps everything)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Dotenv never overrides variables already present in the environment
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	var err error

	// Fall back to environment variables
	if cfg.Port == 0 {
		if cfg.Port, err = intEnv("PORT", 3000); err != nil {
			return Config{}, err
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, errors.New("port must be between 1 and 65535")
	}

	if cfg.ServiceURL == "" {
		cfg.ServiceURL = stringEnv("SERVICE_URL", "http://localhost:8080")
	}
	service, err := url.Parse(cfg.ServiceURL)
	if err != nil || (service.Scheme != "http" && service.Scheme != "https") || service.Host == "" {
		return Config{}, errors.New("service URL must be an absolute http(s) URL")
	}

	if cfg.FeedURL == "" {
		cfg.FeedURL = os.Getenv("FEED_URL")
	}
	if cfg.FeedURL == "" {
		cfg.FeedURL = DeriveFeedURL(service)
	}
	if feed, err := url.Parse(cfg.FeedURL); err != nil || (feed.Scheme != "ws" && feed.Scheme != "wss") {
		return Config{}, errors.New("feed URL must be a ws:// or wss:// URL")
	}

	if cfg.FeedTopic == "" {
		cfg.FeedTopic = stringEnv("FEED_TOPIC", "/topic/elevators")
	}
	if cfg.Origin == "" {
		cfg.Origin = stringEnv("ORIGIN", "http://localhost:3000")
	}

	if cfg.Floors == 0 {
		if cfg.Floors, err = intEnv("FLOORS", 10); err != nil {
			return Config{}, err
		}
	}
	if cfg.Floors < 1 {
		return Config{}, errors.New("floors must be at least 1")
	}

	if cfg.Elevators == 0 {
		if cfg.Elevators, err = intEnv("ELEVATORS", 3); err != nil {
			return Config{}, err
		}
	}
	if cfg.Elevators < 1 {
		return Config{}, errors.New("elevators must be at least 1")
	}

	if cfg.ReconnectDelay == 0 {
		if cfg.ReconnectDelay, err = durationEnv("RECONNECT_DELAY", 5*time.Second); err != nil {
			return Config{}, err
		}
	}
	if cfg.ReconnectDelay <= 0 {
		return Config{}, errors.New("reconnect delay must be positive")
	}

	if cfg.RequestTimeout == 0 {
		if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", 5*time.Second); err != nil {
			return Config{}, err
		}
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, errors.New("request timeout must be positive")
	}

	// -1 means unset so that an explicit -call-timeout 0 can disable it
	if cfg.CallTimeout < 0 {
		if cfg.CallTimeout, err = durationEnv("CALL_TIMEOUT", 0); err != nil {
			return Config{}, err
		}
	}
	if cfg.CallTimeout < 0 {
		return Config{}, errors.New("call timeout must not be negative")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = stringEnv("DATABASE_TYPE", "sqlite")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.Retention < 0 {
		if cfg.Retention, err = durationEnv("JOURNAL_RETENTION", 24*time.Hour); err != nil {
			return Config{}, err
		}
	}
	if cfg.Retention < 0 {
		return Config{}, errors.New("journal retention must not be negative")
	}

	return cfg, nil
}

// DeriveFeedURL returns the raw WebSocket endpoint of the service's SockJS
// broker at /ws.
func DeriveFeedURL(service *url.URL) string {
	u := *service
	u.Scheme = "ws"
	if service.Scheme == "https" {
		u.Scheme = "wss"
	}
	u.Path = "/ws/websocket"
	u.RawQuery = ""
	return u.String()
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
