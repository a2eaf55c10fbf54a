// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/environment/catbot"
	"github.com/catbotrl/catbot/spec"
	ts "github.com/catbotrl/catbot/timestep"
)

// Discretizer maps continuous observations to one bin index per
// observation dimension
type Discretizer interface {
	DiscretizeVec(mat.Vector) (catbot.DiscreteState, error)

	// Len returns the number of observation dimensions
	Len() int

	// MaxIndex returns the largest bin index of dimension i
	MaxIndex(i int) int
}

// Discrete wraps an environment and returns as observations the bin
// indices of the environmental observations. For example, if the bin
// edges of a 2-dimensional observation are [0 1 2] and [0 5 10], then
// the observation [1.5 11] is returned as [2 3].
//
// Discrete itself implements the environment.Environment interface
// and is therefore itself an environment.
type Discrete struct {
	environment.Environment
	bins Discretizer
}

// NewDiscrete creates and returns a new Discrete environment wrapping
// an existing environment. The wrapped environment is reset when
// wrapped by calling its Reset() method.
func NewDiscrete(env environment.Environment, bins Discretizer) (*Discrete,
	ts.TimeStep, error) {
	if n := env.ObservationSpec().Shape.Len(); n != bins.Len() {
		return nil, ts.TimeStep{}, fmt.Errorf("newDiscrete: environment "+
			"observations have %d dimensions but discretizer has %d", n,
			bins.Len())
	}

	d := &Discrete{env, bins}
	step, err := d.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newDiscrete: %w", err)
	}
	return d, step, nil
}

// Reset resets the environment to some starting state
func (d *Discrete) Reset() (ts.TimeStep, error) {
	step, err := d.Environment.Reset()
	if err != nil {
		return step, err
	}

	return d.discretize(step)
}

// Step takes one environmental step given action a and returns the next
// state as a timestep.TimeStep and a bool indicating whether or not the
// episode has ended
func (d *Discrete) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, last, err := d.Environment.Step(a)
	if err != nil {
		return step, last, err
	}

	step, err = d.discretize(step)
	return step, last, err
}

// LastTimeStep returns the last TimeStep that occurred in the
// environment
func (d *Discrete) LastTimeStep() ts.TimeStep {
	step, err := d.discretize(d.Environment.LastTimeStep())
	if err != nil {
		// The step was discretized without error when it was returned
		// by Reset or Step
		panic(fmt.Sprintf("lastTimeStep: %v", err))
	}
	return step
}

// discretize replaces the observation of a timestep with its bin
// indices
func (d *Discrete) discretize(step ts.TimeStep) (ts.TimeStep, error) {
	state, err := d.bins.DiscretizeVec(step.Observation)
	if err != nil {
		return step, fmt.Errorf("discretize: %w", err)
	}

	step.Observation = state.Vec()
	return step, nil
}

// ObservationSpec returns the observation specification of the
// environment
func (d *Discrete) ObservationSpec() spec.Environment {
	length := d.bins.Len()
	shape := mat.NewVecDense(length, nil)

	lowerBound := mat.NewVecDense(length, nil)
	upperBound := mat.NewVecDense(length, nil)
	for i := 0; i < length; i++ {
		upperBound.SetVec(i, float64(d.bins.MaxIndex(i)))
	}

	return spec.NewEnvironment(shape, spec.Observation, lowerBound,
		upperBound, spec.Discrete)
}

// String returns a string representation of the Discrete environment
func (d *Discrete) String() string {
	return fmt.Sprintf("Discrete: %v", d.Environment)
}
