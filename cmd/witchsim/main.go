package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/witchwood/logger"
	"github.com/milk9111/witchwood/prefabs"
	"github.com/milk9111/witchwood/sim"
	"github.com/milk9111/witchwood/telemetry"
)

func main() {
	sceneName := flag.String("scene", "cemetery.yaml", "scene prefab in prefabs/")
	witchName := flag.String("witch", "witch.yaml", "witch prefab in prefabs/")
	playerName := flag.String("player", "player.yaml", "player prefab in prefabs/")
	ticks := flag.Int("ticks", 60*180, "maximum ticks to simulate (0 runs until the scene ends)")
	tps := flag.Int("tps", 0, "ticks per second of wall time (0 runs as fast as possible)")
	seed := flag.Int64("seed", 1, "seed for the witch's wander sampling")
	serve := flag.String("serve", "", "address to stream snapshots on, e.g. :8080")
	watch := flag.Bool("watch", false, "hot-reload witch tunables and collect scripts from prefabs/")
	list := flag.Bool("list", false, "list available prefabs and exit")
	flag.Parse()

	logger.Init()
	log := logger.For("witchsim")

	if *list {
		for _, name := range prefabs.Names() {
			log.WithField("prefab", name).Info("available")
		}
		return
	}

	s, err := sim.Load(*sceneName, *witchName, *playerName, sim.Options{Seed: *seed})
	if err != nil {
		log.WithError(err).Fatal("failed to load scene")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *telemetry.Hub
	if *serve != "" {
		hub = telemetry.NewHub()
		go func() {
			if err := hub.Serve(ctx, *serve); err != nil {
				log.WithError(err).Error("telemetry server stopped")
			}
		}()
	}

	var changes <-chan string
	var watchErrs <-chan error
	if *watch {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.WithError(err).Warn("hot reload disabled")
		} else {
			defer w.Close()
			changes, watchErrs = w.Events, w.Errors
		}
	}

	r := &runner{sim: s, hub: hub, witchName: *witchName, log: log}
	r.run(ctx, *ticks, *tps, changes, watchErrs)

	snap := s.Snapshot()
	log.WithFields(logrus.Fields{
		"outcome":    s.Outcome(),
		"ticks":      snap.Tick,
		"time":       snap.Time,
		"player_hp":  snap.Player.Health,
		"witch_hp":   snap.Witch.Health,
		"aggression": snap.Witch.Brain.Aggression,
		"cookies":    snap.Player.Cookies,
	}).Info("run finished")
}

type runner struct {
	sim       *sim.Sim
	hub       *telemetry.Hub
	witchName string
	log       *logrus.Entry
}

func (r *runner) run(ctx context.Context, maxTicks, tps int, changes <-chan string, watchErrs <-chan error) {
	dt := 1.0 / 60
	var pace <-chan time.Time
	if tps > 0 {
		dt = 1.0 / float64(tps)
		ticker := time.NewTicker(time.Second / time.Duration(tps))
		defer ticker.Stop()
		pace = ticker.C
	}

	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return
		}

		r.drain(changes, watchErrs)
		r.sim.Step(dt)
		if r.hub != nil {
			if err := r.hub.Publish(r.sim.Snapshot()); err != nil {
				r.log.WithError(err).Warn("failed to publish snapshot")
			}
		}
		if r.sim.Outcome() != sim.Running {
			return
		}
	}
}

func (r *runner) drain(changes <-chan string, watchErrs <-chan error) {
	for {
		select {
		case path, ok := <-changes:
			if !ok {
				return
			}
			if err := r.reload(path); err != nil {
				r.log.WithError(err).WithField("path", path).Warn("reload failed")
			}
		case err, ok := <-watchErrs:
			if !ok {
				return
			}
			r.log.WithError(err).Warn("watcher error")
		default:
			return
		}
	}
}
