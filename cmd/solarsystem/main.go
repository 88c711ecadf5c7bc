package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"solar-system-sim/internal/config"
	"solar-system-sim/internal/scene"
	"solar-system-sim/internal/simulation"
	"solar-system-sim/internal/visualization"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML scene file; defaults are used when empty")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}
	slog.SetDefault(logger)
	if *configPath == "" {
		logger.Info("using built-in scene")
	} else {
		logger.Info("config loaded", "path", *configPath)
	}

	// --- Scene ---
	seed := cfg.Stars.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sc, err := scene.Build(cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatalf("Error building scene: %v", err)
	}
	clock := simulation.WallClock{}
	sc.System.Update(clock.NowMillis())
	sc.System.LogState(logger)

	// --- Rendering ---
	textures := visualization.LoadTextures(cfg.Assets.Dir, sc, cfg.Assets.MaxTextureSize, logger)
	vis, err := visualization.NewRenderer(sc, clock, textures, cfg.Window.ShowHUD, logger)
	if err != nil {
		log.Fatalf("Failed to create visualizer: %v", err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(vis); err != nil {
		log.Fatal(err)
	}
	logger.Info("window closed")
}
