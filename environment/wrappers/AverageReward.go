package wrappers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/spec"
	"github.com/catbotrl/catbot/timestep"
)

// AverageReward wraps an environment and alters rewards so that the
// differential reward is returned for each action, that is the reward
// minus an estimate of the average reward of the policy generating
// the actions. Since the Catbot's shaped reward is dominated by the
// alive bonus, the differential reward tells an agent whether a step
// did better or worse than usual.
//
// The average reward is estimated as an exponential moving average
// of the environmental rewards:
//
//	avgReward <- avgReward + learningRate * (reward - avgReward)
//
// The estimate is carried across episodes. AverageReward itself
// implements the environment.Environment interface, and is therefore
// itself an Environment.
type AverageReward struct {
	environment.Environment
	avgReward    float64
	learningRate float64
	lastStep     timestep.TimeStep
}

// NewAverageReward creates and returns a new AverageReward Environment
// wrapper. The init parameter is the initial value for the average
// reward estimate.
func NewAverageReward(env environment.Environment, init,
	learningRate float64) (*AverageReward, timestep.TimeStep, error) {
	if learningRate <= 0 || learningRate > 1 {
		return nil, timestep.TimeStep{}, fmt.Errorf("newAverageReward: "+
			"learning rate must be in (0, 1], have %v", learningRate)
	}

	a := &AverageReward{Environment: env, avgReward: init,
		learningRate: learningRate}
	step, err := a.Reset()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newAverageReward: %w",
			err)
	}
	return a, step, nil
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (a *AverageReward) Reset() (timestep.TimeStep, error) {
	step, err := a.Environment.Reset()
	if err != nil {
		return step, err
	}

	// Average reward setting does not have discounting
	step.Discount = 1.0
	a.lastStep = step
	return step, nil
}

// Step takes one environmental step given action a and returns the next
// timestep as a timestep.TimeStep and a bool indicating whether or not
// the episode has ended.
func (a *AverageReward) Step(action *mat.VecDense) (timestep.TimeStep,
	bool, error) {
	step, last, err := a.Environment.Step(action)
	if err != nil {
		return step, last, err
	}

	a.avgReward += a.learningRate * (step.Reward - a.avgReward)
	step.Reward -= a.avgReward
	step.Discount = 1.0

	a.lastStep = step
	return step, last, nil
}

// LastTimeStep returns the last TimeStep that occurred in the
// environment
func (a *AverageReward) LastTimeStep() timestep.TimeStep {
	return a.lastStep
}

// AverageRewardEstimate returns the current estimate of the average
// reward
func (a *AverageReward) AverageRewardEstimate() float64 {
	return a.avgReward
}

// RewardSpec returns the reward specification for the environment
func (a *AverageReward) RewardSpec() spec.Environment {
	rewardSpec := a.Environment.RewardSpec()

	// Bounds depend on the policy, which is constantly changing, so
	// the bounds cannot be calculated
	n := rewardSpec.Shape.Len()
	lower := mat.NewVecDense(n, nil)
	upper := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		lower.SetVec(i, math.Inf(-1))
		upper.SetVec(i, math.Inf(1))
	}
	rewardSpec.LowerBound = lower
	rewardSpec.UpperBound = upper

	return rewardSpec
}

// DiscountSpec returns the discount specification for the environment.
// Average reward setting does not use discounting, so the discount
// value is always set to 1.0.
func (a *AverageReward) DiscountSpec() spec.Environment {
	discountSpec := a.Environment.DiscountSpec()

	bounds := make([]float64, discountSpec.Shape.Len())
	for i := range bounds {
		bounds[i] = 1.0
	}

	vecBounds := mat.NewVecDense(len(bounds), bounds)
	discountSpec.LowerBound = vecBounds
	discountSpec.UpperBound = vecBounds

	return discountSpec
}

// String returns a string representation of the AverageReward
// environment
func (a *AverageReward) String() string {
	return fmt.Sprintf("Average Reward: %v", a.Environment)
}
