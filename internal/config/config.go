// Package config provides application configuration structures and helpers.
package config

import (
	"flag"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/and161185/checkpoint-timer/model"
)

// ServerConfig holds the configuration settings for the report server.
type ServerConfig struct {
	Addr            string // Server address
	Logger          *zap.SugaredLogger
	MemoryProfiling bool       // Whether new timers capture memory snapshots
	ReportMode      model.Mode // Default report format: terminal or markup
}

// NewServerConfig creates and returns a new ServerConfig by parsing flags and
// environment variables. Environment variables take precedence over flags.
func NewServerConfig() *ServerConfig {
	logger := zap.Must(zap.NewProduction())

	cfg := &ServerConfig{}
	var mode string
	flag.StringVar(&cfg.Addr, "a", "localhost:8080", "HTTP server address")
	flag.BoolVar(&cfg.MemoryProfiling, "m", false, "capture memory snapshots on every checkpoint")
	flag.StringVar(&mode, "o", string(model.ModeMarkup), "default report format: terminal or markup")
	flag.Parse()

	cfg.Logger = logger.Sugar()
	cfg.ReportMode = parseMode(mode, model.ModeMarkup)

	readServerEnvironment(cfg)

	return cfg
}

func readServerEnvironment(cfg *ServerConfig) {
	if addr := os.Getenv("ADDRESS"); addr != "" {
		cfg.Addr = addr
	}

	if mp := os.Getenv("MEMORY_PROFILING"); mp != "" {
		v, err := strconv.ParseBool(mp)
		if err == nil {
			cfg.MemoryProfiling = v
		} else {
			log.Printf("invalid MEMORY_PROFILING env var: %v", err)
		}
	}

	if mode := os.Getenv("REPORT_FORMAT"); mode != "" {
		cfg.ReportMode = parseMode(mode, cfg.ReportMode)
	}
}

func parseMode(s string, fallback model.Mode) model.Mode {
	switch model.Mode(s) {
	case model.ModeTerminal, model.ModeMarkup:
		return model.Mode(s)
	default:
		log.Printf("unknown report format %q, using %q", s, fallback)
		return fallback
	}
}
