// Package main provides the headless scenario runner. It replays a recorded
// input scenario against one character at the configured tick rate and logs
// every state transition.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shooter/internal/app"
	"github.com/cory-johannsen/shooter/internal/config"
	"github.com/cory-johannsen/shooter/internal/game/input"
	"github.com/cory-johannsen/shooter/internal/game/tick"
	"github.com/cory-johannsen/shooter/internal/scripting"
	"github.com/cory-johannsen/shooter/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "content/scenarios/switch_and_fire.yaml", "path to input scenario YAML")
	fast := flag.Bool("fast", false, "replay without waiting between ticks")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	a, cleanup, err := app.Initialize(&cfg)
	if err != nil {
		log.Fatalf("initializing app: %v", err)
	}
	defer cleanup()
	logger := a.Logger

	scenario, err := input.LoadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal("loading scenario", zap.Error(err))
	}
	replay := app.NewReplay(a, scenario, logger.Named("sim"))

	logger.Info("starting scenario",
		zap.String("scenario", scenario.Name),
		zap.Duration("duration", scenario.End()),
		zap.Int("events", len(scenario.Events)),
		zap.Int("tick_rate", cfg.Tick.Rate),
		zap.String("character", string(a.ID)),
	)

	if *fast {
		steps := tick.RunSteps(int(scenario.End()/cfg.Tick.Interval())+1, cfg.Tick.Interval(), replay.Step)
		logger.Info("scenario finished",
			zap.Int("ticks", steps),
			zap.Duration("elapsed", time.Since(start)),
		)
		return
	}

	lc := server.NewLifecycle(logger, server.DefaultGrace)
	driver := tick.NewDriver(cfg.Tick.Interval(), replay.Step, logger.Named("tick"))
	lc.Add("tick", driver)

	if a.Scripts != nil && cfg.Content.WatchScripts {
		reloader, err := scripting.NewReloader(a.Scripts, logger.Named("scripting"))
		if err != nil {
			logger.Fatal("watching scripts", zap.Error(err))
		}
		lc.Add("script-reloader", reloader)
	}

	if err := lc.Run(context.Background()); err != nil {
		logger.Error("scenario aborted", zap.Error(err))
	}
	logger.Info("scenario finished",
		zap.Uint64("ticks", driver.Ticks()),
		zap.Duration("scenario_time", replay.Now()),
		zap.Duration("elapsed", time.Since(start)),
	)
}
