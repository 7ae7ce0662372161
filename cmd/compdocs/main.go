package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/compdocs/internal/config"
	"git.home.luguber.info/inful/compdocs/internal/logfields"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"compdocs.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
	} `cmd:"" help:"Build documentation artifacts and navigation for all configured libraries"`

	Discover struct {
		Library string `short:"l" help:"Restrict to one library (optional)"`
	} `cmd:"" help:"List discovered components without building"`

	Watch struct {
		Library string `short:"l" help:"Restrict to one library (optional)"`
	} `cmd:"" help:"Build once, then watch component sources and rebuild on change"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.Error(err))
		os.Exit(1)
	}

	switch ctx.Command() {
	case "build":
		if err := runBuild(context.Background(), cfg); err != nil {
			slog.Error("Build failed", logfields.Error(err))
			os.Exit(1)
		}
	case "discover":
		if err := runDiscover(cfg, CLI.Discover.Library); err != nil {
			slog.Error("Discovery failed", logfields.Error(err))
			os.Exit(1)
		}
	case "watch":
		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := runWatch(runCtx, cfg, CLI.Watch.Library); err != nil {
			slog.Error("Watch mode failed", logfields.Error(err))
			os.Exit(1)
		}
	}
}
