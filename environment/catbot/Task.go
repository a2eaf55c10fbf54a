package catbot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	env "github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/spec"
	ts "github.com/catbotrl/catbot/timestep"
)

// Stand implements the Catbot standing task. In this task the robot
// should stay upright at a goal point while keeping its joints near
// rest, using little effort, and loading each foot with the desired
// contact force.
//
// Each step is rewarded with the shaped reward of a RewardEngine. When
// the robot falls, that is when its height or orientation leaves the
// safety Bounds, the step is instead rewarded with a fixed done reward
// and the episode ends.
//
// Episodes end when the robot falls or after a step limit.
type Stand struct {
	goals       env.Starter
	fallEnder   *env.FunctionEnder
	stepLimiter *env.StepLimit
	engine      *RewardEngine
	termination *Termination
	doneReward  float64
	lastTerms   RewardTerms
}

// NewStand creates and returns a new Stand task. Goal points are
// sampled from goals at the start of each episode; goals may be nil,
// in which case the environment keeps its current goal. An
// episodeSteps of 0 or less disables the step limit.
func NewStand(goals env.Starter, episodeSteps int, c Config) (*Stand,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newStand: %w", err)
	}

	s := &Stand{
		goals:       goals,
		stepLimiter: env.NewStepLimit(episodeSteps),
		engine:      NewRewardEngine(c),
		termination: NewTermination(c.bounds()),
		doneReward:  c.DoneReward,
	}
	s.fallEnder = env.NewFunctionEnder(func(*ts.TimeStep) bool {
		return s.termination.Status() == Fallen
	}, ts.TerminalStateReached)

	return s, nil
}

// Start samples a new goal point. Start returns nil if the task has
// no goal distribution.
func (s *Stand) Start() *mat.VecDense {
	if s.goals == nil {
		return nil
	}

	goal := s.goals.Start()
	if goal.Len() != 3 {
		panic(fmt.Sprintf("start: goal must have 3 dimensions, have %d",
			goal.Len()))
	}
	return goal
}

// Reset returns the task to the start of a new episode
func (s *Stand) Reset() {
	s.termination.Reset()
	s.lastTerms = RewardTerms{}
}

// Evaluate returns the reward for reaching the Snapshot and whether
// the robot has fallen. Once the robot has fallen, every evaluation
// until the next Reset returns the done reward.
func (s *Stand) Evaluate(snap Snapshot, goal r3.Vec) (float64, bool) {
	if s.termination.Check(snap) {
		s.lastTerms = RewardTerms{}
		return s.doneReward, true
	}

	s.lastTerms = s.engine.Terms(snap, goal)
	return s.engine.alive - s.lastTerms.Penalty(), false
}

// LastTerms returns the penalty terms of the most recent shaped
// reward. The terms are zero if the last evaluation found the robot
// fallen.
func (s *Stand) LastTerms() RewardTerms {
	return s.lastTerms
}

// Status returns whether the robot is alive or has fallen in the
// current episode
func (s *Stand) Status() Status {
	return s.termination.Status()
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last and returns true. Otherwise,
// the function does not adjust the TimeStep and returns false. A fall
// takes precedence over the step limit.
func (s *Stand) End(t *ts.TimeStep) bool {
	if s.fallEnder.End(t) {
		return true
	}
	return s.stepLimiter.End(t)
}

// Min returns the minimum possible reward that can be received in the
// environment
func (s *Stand) Min() float64 {
	return math.Inf(-1)
}

// Max returns the maximum possible reward that can be received in the
// environment
func (s *Stand) Max() float64 {
	return math.Max(s.engine.Max(), s.doneReward)
}

// RewardSpec returns the reward specification for the environment
func (s *Stand) RewardSpec() spec.Environment {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{s.Min()})
	upperBound := mat.NewVecDense(1, []float64{s.Max()})

	return spec.NewEnvironment(shape, spec.Reward, lowerBound, upperBound,
		spec.Continuous)
}
