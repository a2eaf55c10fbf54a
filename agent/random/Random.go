// Package random implements an agent which selects discrete actions
// at random and never learns. It is used as a baseline and to drive
// environments when replaying recorded rollouts.
package random

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/catbotrl/catbot/agent"
	"github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/spec"
	"github.com/catbotrl/catbot/timestep"
)

// Config configures a Random agent. If Weights is empty, actions are
// selected uniformly. Otherwise action i is selected with probability
// proportional to Weights[i].
type Config struct {
	Weights []float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// Validate returns an error describing whether or not the
// configuration is valid or not.
func (c Config) Validate() error {
	total := 0.0
	for i, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("validate: action %d has negative weight %v",
				i, w)
		}
		total += w
	}
	if len(c.Weights) > 0 && total == 0 {
		return fmt.Errorf("validate: all action weights are zero")
	}
	return nil
}

// CreateAgent creates the agent that the config describes
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// Random selects discrete actions at random from a categorical
// distribution. Random implements the agent.Agent interface, but its
// Learner methods do nothing.
type Random struct {
	dist distuv.Categorical
	eval bool
}

// New returns a new Random agent acting in env
func New(env environment.Environment, c Config, seed uint64) (*Random,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	actionSpec := env.ActionSpec()
	if actionSpec.Shape.Len() != 1 {
		return nil, fmt.Errorf("new: random agent can only be used with " +
			"1-dimensional actions")
	}
	if actionSpec.Cardinality != spec.Discrete {
		return nil, fmt.Errorf("new: random agent can only be used with " +
			"discrete actions")
	}

	// Discrete actions are numbered from 0
	actions := int(actionSpec.UpperBound.AtVec(0)) + 1

	weights := c.Weights
	if len(weights) == 0 {
		weights = make([]float64, actions)
		for i := range weights {
			weights[i] = 1.0
		}
	}
	if len(weights) != actions {
		return nil, fmt.Errorf("new: have %d action weights for %d actions",
			len(weights), actions)
	}

	source := rand.NewSource(seed)
	return &Random{dist: distuv.NewCategorical(weights, source)}, nil
}

// SelectAction selects a random action
func (r *Random) SelectAction(_ timestep.TimeStep) *mat.VecDense {
	return mat.NewVecDense(1, []float64{r.dist.Rand()})
}

// Eval sets the agent to evaluation mode
func (r *Random) Eval() { r.eval = true }

// Train sets the agent to training mode
func (r *Random) Train() { r.eval = false }

// IsEval returns whether the agent is in evaluation mode
func (r *Random) IsEval() bool { return r.eval }

// Step performs no update
func (r *Random) Step() error { return nil }

// Observe does nothing
func (r *Random) Observe(mat.Vector, timestep.TimeStep) error { return nil }

// ObserveFirst does nothing
func (r *Random) ObserveFirst(timestep.TimeStep) error { return nil }

// EndEpisode does nothing
func (r *Random) EndEpisode() {}
