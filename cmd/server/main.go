package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/moneydash/fx/infra/initializer"
	"github.com/moneydash/fx/pkg/config"
	"github.com/moneydash/fx/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	deps, err := initializer.Initialize(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.SetupApp(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"cache_ttl", cfg.Cache.TTL,
		"cache_capacity", cfg.Cache.Capacity,
	)

	return app.Listen(addr)
}
