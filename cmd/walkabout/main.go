package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/walkabout/internal/config"
	"github.com/smasonuk/walkabout/internal/logger"
	"github.com/smasonuk/walkabout/viewer"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so that deferred cleanup happens before
// the process exits.
func run(args []string) int {
	fs := flag.NewFlagSet("walkabout", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (profile defaults when empty)")
	profile := fs.String("profile", config.DefaultProfile, "profile used when no config file is given: centered, framed or placeholder")
	assetPath := fs.String("asset", "", "model to load (.glb, .gltf, .ply, .dxf), overrides the config")
	logLevel := fs.String("log-level", "", "debug, info, warn or error, overrides the config")
	watch := fs.Bool("watch", false, "reload motion and zoom settings when the config file changes")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, *profile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}
	if *assetPath != "" {
		cfg.Asset = *assetPath
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logCfg := logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			slog.Error("Failed to open log file", "file", cfg.Logging.File, "error", err)
			return 1
		}
		defer f.Close()
		logCfg.Output = f
	}
	logger.Init(logCfg)
	log := logger.L()

	session, err := viewer.New(cfg, log)
	if err != nil {
		log.Error("Failed to create viewer", "error", err)
		return 1
	}
	defer session.Close()

	if *watch && *configPath != "" {
		if err := session.WatchConfig(*configPath); err != nil {
			log.Warn("Config watch disabled", "error", err)
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	session.Start(context.Background())
	log.Info("Starting viewer", "profile", cfg.Profile, "asset", cfg.Asset)

	if err := ebiten.RunGame(session); err != nil {
		log.Error("Viewer stopped", "error", err)
		return 1
	}
	return 0
}

func loadConfig(path, profile string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Profile(profile)
}
