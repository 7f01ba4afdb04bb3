package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/witchwood/logger"
	"github.com/milk9111/witchwood/prefabs"
	"github.com/milk9111/witchwood/sim"
)

func main() {
	sceneName := flag.String("scene", "cemetery.yaml", "scene prefab in prefabs/")
	witchName := flag.String("witch", "witch.yaml", "witch prefab in prefabs/")
	playerName := flag.String("player", "player.yaml", "player prefab in prefabs/")
	seed := flag.Int64("seed", 1, "seed for the witch's wander sampling")
	watch := flag.Bool("watch", false, "hot-reload witch tunables and collect scripts from prefabs/")
	flag.Parse()

	logger.Init()
	log := logger.For("viewer")

	s, err := sim.Load(*sceneName, *witchName, *playerName, sim.Options{Seed: *seed})
	if err != nil {
		log.WithError(err).Fatal("failed to load scene")
	}

	game := NewGame(s, *witchName, *seed)
	if *watch {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.WithError(err).Warn("hot reload disabled")
		} else {
			defer w.Close()
			game.watch(w)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("witchwood")

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
