package main

import (
	"io"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"
)

// Config holds process defaults read from DELAYLAB_* environment variables.
// Command-line flags override every field.
type Config struct {
	LogLevel    string  `envconfig:"LOG_LEVEL" default:"info"`
	ServiceTime float64 `envconfig:"SERVICE_TIME" default:"1"`
	Seed        int64   `envconfig:"SEED" default:"42"`
	SimSeconds  float64 `envconfig:"SIM_SECONDS" default:"120"`
	Format      string  `envconfig:"FORMAT" default:"table"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("delaylab", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newLogger returns a tint handler at the given level; unknown levels fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
	}))
}
