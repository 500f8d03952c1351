package system

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }

func (s *recordingSystem) Update(step uint64) {
	*s.log = append(*s.log, s.name)
}

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "report", phase: PhaseReport, log: &log})
	r.Register(&recordingSystem{name: "act", phase: PhaseAct, log: &log})
	r.Register(&recordingSystem{name: "start", phase: PhaseStart, log: &log})

	r.Tick(1)
	require.Equal(t, []string{"start", "act", "report"}, log)
}

func TestRunnerStableWithinPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "a", phase: PhaseAct, log: &log})
	r.Register(&recordingSystem{name: "b", phase: PhaseAct, log: &log})
	r.Register(&recordingSystem{name: "c", phase: PhaseAct, log: &log})

	r.Tick(1)
	require.Equal(t, []string{"a", "b", "c"}, log)
}

func TestRunnerLateRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{name: "act", phase: PhaseAct, log: &log})
	r.Tick(1)

	r.Register(&recordingSystem{name: "start", phase: PhaseStart, log: &log})
	log = log[:0]
	r.Tick(2)
	require.Equal(t, []string{"start", "act"}, log)
}
