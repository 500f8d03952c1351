package system

// Phase defines execution ordering within a single simulation step.
type Phase int

const (
	PhaseStart  Phase = iota // 0: step boundary — event dispatch, sequence start
	PhaseAct                 // 1: actor behaviors
	PhaseReport              // 2: periodic stats
)

// System is the interface every step system implements.
type System interface {
	Phase() Phase
	Update(step uint64)
}
