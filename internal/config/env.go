// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/tomz197/strafe/internal/combat"
)

// Config is the process configuration shared by the local and SSH front-ends.
type Config struct {
	SSHHost     string `env:"STRAFE_SSH_HOST"  envDefault:"::"`
	SSHPort     string `env:"STRAFE_SSH_PORT"  envDefault:"2222"`
	HostKeyPath string `env:"STRAFE_HOST_KEY"  envDefault:".ssh/strafe_ed25519"`
	MaxSessions int    `env:"STRAFE_MAX_SESSIONS" envDefault:"32"`

	LogLevel string `env:"STRAFE_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"STRAFE_LOG_FILE"`

	TickRate      int           `env:"STRAFE_TICK_RATE"      envDefault:"60"`
	SensH         float64       `env:"STRAFE_SENS_H"         envDefault:"0.0018"`
	SensV         float64       `env:"STRAFE_SENS_V"         envDefault:"0.0015"`
	ShutdownGrace time.Duration `env:"STRAFE_SHUTDOWN_GRACE" envDefault:"15s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TickRate < 1 || c.TickRate > 1000 {
		return fmt.Errorf("tick rate %d out of range [1,1000]", c.TickRate)
	}
	if c.SensH <= 0 || c.SensV <= 0 {
		return errors.New("sensitivity must be positive")
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("max sessions %d must be positive", c.MaxSessions)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// TickInterval returns the fixed simulation step.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Combat returns the gameplay tunables with the configured sensitivity.
func (c Config) Combat() combat.Config {
	cc := combat.DefaultConfig()
	cc.Sensitivity = combat.Sensitivity{Horizontal: c.SensH, Vertical: c.SensV}
	return cc
}

// Logger builds the process logger. Without a log file, output goes to
// fallback, which may be io.Discard when the terminal belongs to the game.
// The returned closer releases the log file.
func (c Config) Logger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	out, closer := fallback, io.Closer(nopCloser{})
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
