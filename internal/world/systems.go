package world

import (
	"go.uber.org/zap"

	"github.com/gridfoot/engine/internal/core/system"
)

// startSystem runs the step boundary: last step's events go out, then the
// collision engine opens a new query sequence.
type startSystem struct {
	w *World
}

func (s *startSystem) Phase() system.Phase { return system.PhaseStart }

func (s *startSystem) Update(step uint64) {
	s.w.bus.SwapBuffers()
	s.w.bus.DispatchAll()
	s.w.checker.StartSequence()
}

// actSystem runs every actor's behavior over a snapshot of the act order.
// Actors removed earlier in the same step are skipped, so an actor never
// acts after another actor removed it.
type actSystem struct {
	w *World
}

func (s *actSystem) Phase() system.Phase { return system.PhaseAct }

func (s *actSystem) Update(step uint64) {
	for _, a := range s.w.actOrdered() {
		if a.world != s.w || a.behavior == nil {
			continue
		}
		a.behavior.Act(a)
	}
}

// ReportSystem periodically logs world population stats.
type ReportSystem struct {
	w     *World
	every uint64
	log   *zap.Logger
}

// NewReportSystem logs a stats line every `every` steps.
func NewReportSystem(w *World, every uint64, log *zap.Logger) *ReportSystem {
	if every == 0 {
		every = 1
	}
	return &ReportSystem{w: w, every: every, log: log}
}

func (s *ReportSystem) Phase() system.Phase { return system.PhaseReport }

func (s *ReportSystem) Update(step uint64) {
	if step%s.every != 0 {
		return
	}
	s.log.Info("step report",
		zap.Uint64("step", step),
		zap.Int("actors", s.w.NumberOfObjects()),
	)
}
