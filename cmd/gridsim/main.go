package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridfoot/engine/internal/config"
	"github.com/gridfoot/engine/internal/core/event"
	"github.com/gridfoot/engine/internal/core/kind"
	"github.com/gridfoot/engine/internal/scenario"
	"github.com/gridfoot/engine/internal/scripting"
	"github.com/gridfoot/engine/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/gridsim.toml"
	if p := os.Getenv("GRIDSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load scenario and register kinds
	reg := kind.NewRegistry()
	scn, err := scenario.Load(cfg.Simulation.Scenario)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if _, err := scn.RegisterKinds(reg); err != nil {
		return fmt.Errorf("register kinds: %w", err)
	}
	log.Info("scenario loaded",
		zap.String("path", cfg.Simulation.Scenario),
		zap.Int("kinds", reg.Count()),
	)

	// 4. Build world
	w := world.New(reg, cfg.World.Width, cfg.World.Height, cfg.World.CellSize, cfg.World.Wrap, log)
	if cfg.Simulation.ReportEvery > 0 {
		w.AddSystem(world.NewReportSystem(w, uint64(cfg.Simulation.ReportEvery), log))
	}

	// 5. Lua behaviors
	luaEngine, err := scripting.NewEngine(cfg.Simulation.ScriptsDir, reg, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	// 6. Populate world from scenario spawns
	spawned, err := scn.Populate(w, luaEngine.Behavior)
	if err != nil {
		return fmt.Errorf("populate: %w", err)
	}
	log.Info("world populated", zap.Int("actors", spawned))

	// Lifecycle events from the last step, logged at debug
	event.Subscribe(w.Bus(), func(ev event.ActorRemoved) {
		log.Debug("actor removed",
			zap.Uint64("actor_id", ev.ActorID),
			zap.String("kind", reg.Name(ev.Kind)),
			zap.Int("x", ev.X), zap.Int("y", ev.Y),
		)
	})

	// 7. Run
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	start := time.Now()
	steps := cfg.Simulation.Steps

	if cfg.Simulation.TickRate <= 0 {
		// As fast as possible, fixed step count (0 means nothing to do).
		for i := 0; i < steps; i++ {
			w.Step()
		}
		log.Info("simulation finished",
			zap.Uint64("steps", w.StepCount()),
			zap.Int("actors", w.NumberOfObjects()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	}

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()
	log.Info("simulation running",
		zap.Duration("tick_rate", cfg.Simulation.TickRate),
		zap.Int("steps", steps),
	)

	for {
		select {
		case <-ticker.C:
			w.Step()
			if steps > 0 && w.StepCount() >= uint64(steps) {
				log.Info("simulation finished",
					zap.Uint64("steps", w.StepCount()),
					zap.Int("actors", w.NumberOfObjects()),
					zap.Duration("elapsed", time.Since(start)),
				)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal",
				zap.String("signal", sig.String()),
				zap.Uint64("steps", w.StepCount()),
			)
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
