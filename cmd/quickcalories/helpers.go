// cmd/quickcalories/helpers.go
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"quickcalories/internal/config"
	"quickcalories/internal/imageproc"
	"quickcalories/internal/nutrition"
	"quickcalories/internal/ratelimit"
	"quickcalories/internal/server"
	"quickcalories/internal/settings"
	"quickcalories/internal/storage"
)

type app struct {
	cfg      config.Config
	storage  *storage.SQLiteStorage
	settings *settings.Manager
	limiter  *ratelimit.Limiter
	server   *server.QuickCaloriesServer
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

// openApp wires storage, the shared settings instance, the limiter and the
// nutrition client behind one tool server.
func openApp(cfg config.Config) (*app, error) {
	stor, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	mgr, err := settings.Load(stor)
	if err != nil {
		stor.Close()
		return nil, err
	}
	limiter := ratelimit.New(mgr, mgr)
	encoder := imageproc.NewEncoder()

	deps := server.Dependencies{
		Storage:  stor,
		Settings: mgr,
		Limiter:  limiter,
		Images:   encoder,
	}
	if cfg.Gateway.URL != "" {
		client, err := nutrition.NewClient(nutrition.Config{
			GatewayURL:  cfg.Gateway.URL,
			AppSecret:   cfg.Gateway.AppSecret,
			Model:       cfg.Gateway.Model,
			Limiter:     limiter,
			Credentials: mgr,
			Encoder:     encoder,
		})
		if err != nil {
			stor.Close()
			return nil, err
		}
		deps.Estimator = client
	}

	srv, err := server.NewQuickCaloriesServer(&server.Config{Host: cfg.Server.Host, Port: cfg.Server.Port}, deps)
	if err != nil {
		stor.Close()
		return nil, err
	}
	return &app{cfg: cfg, storage: stor, settings: mgr, limiter: limiter, server: srv}, nil
}

func (a *app) Close() error {
	return a.storage.Close()
}

func withApp(run func(*app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return run(a)
}

// call runs a tool and decodes its JSON result into out.
func (a *app) call(ctx context.Context, tool string, args map[string]interface{}, out interface{}) error {
	text, err := a.server.Call(ctx, tool, args)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode %s result: %w", tool, err)
	}
	return nil
}
