package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "tuning YAML file (default: embedded locomotion.yaml)")
	levelName := flag.String("level", "arena", "level prefab name or YAML file")
	scriptName := flag.String("script", "walk_jump", "input script in prefabs/scripts (basename, .tengo optional)")
	ticks := flag.Int("ticks", 300, "number of variable-rate ticks to run")
	dt := flag.Float64("dt", 1.0/60, "variable-rate tick length in seconds")
	variant := flag.String("variant", "", "override the config variant (character-controller|rigidbody)")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	watch := flag.Bool("watch", false, "run in real time and hot-reload the tuning file")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("locosim: bad -log-level")
	}
	log.SetLevel(lvl)

	r, err := simulate(options{
		config:  *configPath,
		level:   *levelName,
		script:  *scriptName,
		ticks:   *ticks,
		dt:      *dt,
		variant: *variant,
		watch:   *watch,
	}, log)
	if err != nil {
		log.WithError(err).Error("locosim: failed")
		os.Exit(1)
	}
	log.WithFields(r.fields()).Info("locosim: report")
}
