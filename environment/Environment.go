// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/catbotrl/catbot/spec"
	"github.com/catbotrl/catbot/timestep"
)

// Starter implements a distribution of starting conditions for an
// episode and samples from it
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines whether a timestep ends an episode. If so, End
// sets the timestep's StepType to timestep.Last along with the reason
// for the ending and returns true.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme and episode endings for some
// environment
type Task interface {
	Starter
	Ender

	// Min returns the minimum attainable reward on any timestep
	Min() float64

	// Max returns the maximum attainable reward on any timestep
	Max() float64

	RewardSpec() spec.Environment
}

// Environment implements an environment which the agent interacts
// with. Environments start ready to use, but Reset must be called
// between episodes.
type Environment interface {
	Reset() (timestep.TimeStep, error)
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)
	LastTimeStep() timestep.TimeStep

	RewardSpec() spec.Environment
	DiscountSpec() spec.Environment
	ObservationSpec() spec.Environment
	ActionSpec() spec.Environment
}
