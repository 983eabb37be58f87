package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/lyricloud/internal/cli"
	"github.com/linuxmatters/lyricloud/internal/config"
	"github.com/linuxmatters/lyricloud/internal/server"
)

// version is set via ldflags at build time
var version = "dev"

var CLI struct {
	Host    string `help:"Bind address (overrides HOST)."`
	Port    string `help:"Bind port (overrides PORT)."`
	Version bool   `help:"Show version information."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("lyricloud-server"),
		kong.Description("Serve word clouds over HTTP."),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(cli.AppName, "Serve word clouds over HTTP. Settings come from the environment or .env.")),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	if CLI.Host != "" {
		cfg.HTTP.Host = CLI.Host
	}
	if CLI.Port != "" {
		cfg.HTTP.Port = CLI.Port
	}
	if cfg.App.Version == "dev" {
		cfg.App.Version = version
	}

	server.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := server.LoadDeps(ctx, *cfg)
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	defer deps.Close()

	log.Printf("[server] word cloud server starting (%s)", cfg.App.Environment)
	if err := server.New(*cfg, deps.Options()...).Run(ctx); err != nil {
		log.Fatalf("[server] %v", err)
	}
}
