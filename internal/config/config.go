// Package config loads the server settings from flags, falling back to the environment.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr         string
	AllowOrigins string
	AIDelay      time.Duration
	Difficulty   model.Difficulty
	LogLevel     log.Level
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		AIDelay:      500 * time.Millisecond,
		Difficulty:   model.Easy,
		LogLevel:     log.LevelInfo,
	}
}

// Load parses args (normally os.Args[1:]). Each flag defaults to its CHESS_*
// environment variable when set, and to Default() otherwise.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	def := Default()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", envOr(getenv, "CHESS_ADDR", def.Addr), "listen address")
	origins := fs.String("origins", envOr(getenv, "CHESS_ALLOW_ORIGINS", def.AllowOrigins), "comma separated CORS origins")
	delay := fs.String("ai-delay", envOr(getenv, "CHESS_AI_DELAY", def.AIDelay.String()), "pause before the computer replies")
	difficulty := fs.String("difficulty", envOr(getenv, "CHESS_DIFFICULTY", string(def.Difficulty)), "default AI difficulty: easy, medium or hard")
	level := fs.String("log-level", envOr(getenv, "CHESS_LOG_LEVEL", "info"), "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{Addr: *addr, AllowOrigins: *origins}
	var err error
	if cfg.AIDelay, err = time.ParseDuration(*delay); err != nil {
		return Config{}, fmt.Errorf("ai-delay: %w", err)
	}
	if cfg.AIDelay < 0 {
		return Config{}, fmt.Errorf("ai-delay: must not be negative, got %s", cfg.AIDelay)
	}
	if cfg.Difficulty, err = model.ParseDifficulty(*difficulty); err != nil {
		return Config{}, fmt.Errorf("difficulty: %w", err)
	}
	if cfg.LogLevel, err = parseLevel(*level); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Origins splits AllowOrigins into its entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("log-level: unknown level %q", s)
}
