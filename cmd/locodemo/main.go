package main

import (
	"flag"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/locomotion/locomotion"
	"github.com/milk9111/locomotion/obj"
	"github.com/milk9111/locomotion/prefabs"
)

func main() {
	configPath := flag.String("config", "", "tuning YAML file (default: prefabs/locomotion.yaml or the embedded copy)")
	levelName := flag.String("level", "arena", "level prefab name")
	variant := flag.String("variant", "", "override the config variant (character-controller|rigidbody)")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	watch := flag.Bool("watch", true, "hot-reload the tuning file")
	debug := flag.Bool("debug", false, "start with the collision overlay on")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithError(err).Warn("locodemo: bad -log-level, using info")
	}

	spec, err := loadSpec(*configPath)
	if err != nil {
		log.WithError(err).Fatal("locodemo: load tuning")
	}
	if *variant != "" {
		spec.Variant = *variant
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		log.WithError(err).Fatal("locodemo: invalid tuning")
	}

	level, err := obj.LoadLevel(*levelName)
	if err != nil {
		log.WithError(err).Fatal("locodemo: load level")
	}

	var tuning <-chan locomotion.Config
	if *watch {
		path := *configPath
		if path == "" {
			path = filepath.Join(prefabs.Dir, "locomotion.yaml")
		}
		if w, err := prefabs.NewWatcher(filepath.Dir(path)); err != nil {
			log.WithError(err).Warn("locodemo: hot reload disabled")
		} else {
			defer w.Close()
			updates := make(chan locomotion.Config, 1)
			go prefabs.ReloadTuning(w.Events, path, updates, log)
			tuning = updates
		}
	}

	game, err := NewGame(cfg, level, tuning, log)
	if err != nil {
		log.WithError(err).Fatal("locodemo: new game")
	}
	game.debug = *debug

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("locomotion")

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.WithError(err).Fatal("locodemo: run")
	}
}

func loadSpec(path string) (prefabs.LocomotionSpec, error) {
	if path == "" {
		return prefabs.LoadLocomotionSpec("locomotion")
	}
	return prefabs.LoadSpecFile[prefabs.LocomotionSpec](path)
}
