// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only Last timesteps carry
// an EndType other than Nil.
type EndType int

const (
	// Nil is the EndType of any timestep which does not end an episode
	Nil EndType = iota

	// TerminalStateReached is used when the robot fell, that is, when
	// its height or orientation left the safe bounds
	TerminalStateReached

	// Timeout is used when the episode step limit was reached
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Nil"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// Observation holds the continuous observation vector in channel
// order. StateKey holds the discrete state key of that observation,
// which tabular agents use to index their value tables.
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	StateKey    string
	Number      int
	endType     EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o *mat.VecDense, key string,
	n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		StateKey:    key,
		Number:      n,
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason for the episode ending. SetEnd panics if the
// TimeStep is not a Last step.
func (t *TimeStep) SetEnd(e EndType) {
	if !t.Last() {
		panic(fmt.Sprintf("setEnd: cannot set end type %v on a %v timestep",
			e, t.StepType))
	}
	t.endType = e
}

// EndType returns the reason the episode ended on this TimeStep
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  State: %v"

	msg := fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.StateKey)
	if t.Last() {
		msg += fmt.Sprintf("  |  End: %v", t.endType)
	}
	return msg
}
