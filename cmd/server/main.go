package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/checkpoint-timer/internal/buildinfo"
	"github.com/and161185/checkpoint-timer/internal/config"
	"github.com/and161185/checkpoint-timer/internal/server"
	"github.com/and161185/checkpoint-timer/registry"
)

func main() {
	buildinfo.PrintBuildInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewServerConfig()

	config.Logger.Infof("Server config: Addr=%s, MemoryProfiling=%t, ReportMode=%s",
		config.Addr,
		config.MemoryProfiling,
		config.ReportMode,
	)

	reg := registry.New()

	srv := server.NewServer(reg, config)
	if err := srv.Run(ctx); err != nil {
		config.Logger.Fatal(err)
	}
}
