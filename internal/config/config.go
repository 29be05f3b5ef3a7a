package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Endpoint       string        `env:"HEARTZ_WS_ENDPOINT" envDefault:"ws://localhost:8080/ws"`
	RoomID         string        `env:"HEARTZ_ROOM_ID,required"`
	PlayerID       string        `env:"HEARTZ_PLAYER_ID,required"`
	ControlEnabled bool          `env:"HEARTZ_CONTROL_ENABLED" envDefault:"true"`
	ControlAddr    string        `env:"HEARTZ_CONTROL_ADDR" envDefault:"127.0.0.1:8089"`
	LogLevel       string        `env:"HEARTZ_LOG_LEVEL" envDefault:"info"`
	LogFile        string        `env:"HEARTZ_LOG_FILE"`
	Headless       bool          `env:"HEARTZ_HEADLESS"`
	OutboxSize     int           `env:"HEARTZ_OUTBOX_SIZE" envDefault:"16"`
	DialTimeout    time.Duration `env:"HEARTZ_DIAL_TIMEOUT" envDefault:"10s"`
	PingInterval   time.Duration `env:"HEARTZ_PING_INTERVAL" envDefault:"15s"`
}

// Load reads the given dotenv files (.env when none are named) if they
// exist, then parses the environment. Variables already set win over files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := uuid.Parse(c.RoomID); err != nil {
		return fmt.Errorf("%w: HEARTZ_ROOM_ID: %w", ErrInvalid, err)
	}
	if _, err := uuid.Parse(c.PlayerID); err != nil {
		return fmt.Errorf("%w: HEARTZ_PLAYER_ID: %w", ErrInvalid, err)
	}
	if c.OutboxSize <= 0 {
		return fmt.Errorf("%w: HEARTZ_OUTBOX_SIZE must be positive, got %d", ErrInvalid, c.OutboxSize)
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("%w: HEARTZ_DIAL_TIMEOUT must be positive", ErrInvalid)
	}
	if c.PingInterval < 0 {
		return fmt.Errorf("%w: HEARTZ_PING_INTERVAL must not be negative", ErrInvalid)
	}
	return nil
}
