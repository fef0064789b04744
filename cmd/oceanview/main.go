//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"oceansim/internal/app"
	"oceansim/internal/clipmap"
	"oceansim/internal/ocean"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	oceanCfg := ocean.DefaultConfig()
	oceanCfg.Resolution = cfg.Resolution
	oceanCfg.Seed = cfg.Seed
	oceanCfg.Params.WindSpeed = cfg.WindSpeed
	oceanCfg.Params.FetchLength = cfg.Fetch

	sea, err := ocean.New(oceanCfg)
	if err != nil {
		log.Fatalf("ocean: %v", err)
	}

	mesh, err := clipmap.New(clipmap.DefaultConfig())
	if err != nil {
		log.Fatalf("clipmap: %v", err)
	}

	game := app.New(sea, mesh, cfg.Scale, cfg.TPS)

	ebiten.SetWindowTitle("oceanview")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Resolution*cfg.Scale, cfg.Resolution*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
