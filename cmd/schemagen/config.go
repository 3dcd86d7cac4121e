package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"

	"github.com/reoring/schemagen"
	"github.com/reoring/schemagen/i18n"
)

// config holds defaults read from the environment. Flags override them.
type config struct {
	// Seed makes output reproducible; empty picks a random seed. ENV: SCHEMAGEN_SEED
	Seed string `env:"SCHEMAGEN_SEED"`
	// MaxUniqueAttempts fixes the duplicate draw budget for uniqueItems
	// arrays; 0 scales it with the value space. ENV: SCHEMAGEN_MAX_UNIQUE_ATTEMPTS
	MaxUniqueAttempts int `env:"SCHEMAGEN_MAX_UNIQUE_ATTEMPTS,default=0"`
	// SizeLimit caps maxItems and maxLength; 0 keeps the library default. ENV: SCHEMAGEN_SIZE_LIMIT
	SizeLimit int `env:"SCHEMAGEN_SIZE_LIMIT,default=0"`
	// LogLevel is one of debug, info, warn, error. ENV: SCHEMAGEN_LOG_LEVEL
	LogLevel string `env:"SCHEMAGEN_LOG_LEVEL,default=info"`
	// Lang selects the message language ("en" or "ja"). ENV: SCHEMAGEN_LANG
	Lang string `env:"SCHEMAGEN_LANG,default=en"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// app is the state shared by sub commands once flags and environment are
// resolved.
type app struct {
	seedFlag     string
	logLevelFlag string

	cfg config
	log *slog.Logger
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if a.seedFlag != "" {
		cfg.Seed = a.seedFlag
	}
	if a.logLevelFlag != "" {
		cfg.LogLevel = a.logLevelFlag
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	i18n.SetLanguage(cfg.Lang)
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// generator builds a Generator from the resolved seed and retry budget.
func (a *app) generator() (*schemagen.Generator, error) {
	opts := schemagen.Options{
		MaxUniqueAttempts: a.cfg.MaxUniqueAttempts,
		SizeLimit:         a.cfg.SizeLimit,
	}
	if a.cfg.Seed != "" {
		seed, err := strconv.ParseUint(a.cfg.Seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", a.cfg.Seed, err)
		}
		opts.Rand = schemagen.NewRand(seed)
		a.log.Debug("using fixed seed", "seed", seed)
	}
	return schemagen.New(opts), nil
}
