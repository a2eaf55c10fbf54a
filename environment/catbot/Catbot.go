// Package catbot implements the environment state of the Catbot, a
// legged robot simulated in an external physics engine.
//
// Sensor feeds write into a Sensors holder. From the latest Snapshot
// the package assembles a continuous Observation, discretizes it into
// a DiscreteState whose key indexes tabular agents, and computes a
// shaped reward along with whether the robot has fallen. Discrete
// action ids are decoded into joint position targets which are handed
// to an Actuator.
package catbot

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/catbotrl/catbot/spec"
	ts "github.com/catbotrl/catbot/timestep"
)

// ActionDims is the dimensionality of Catbot actions
const ActionDims int = 1

// Actuator sends joint position targets, in feed order, to the robot
type Actuator interface {
	Command(targets []float64) error
}

// Resetter is implemented by Actuators that can return the robot to
// its starting pose. Catbot calls Reset at the start of each episode
// if its Actuator is a Resetter.
type Resetter interface {
	Reset() error
}

// Catbot implements the Catbot environment. At each step the agent
// selects one of NumActions discrete actions, each moving a single
// joint forwards or backwards by a fixed increment:
//
//	Action		Meaning
//	  2k		Increment the position of joint k
//	  2k+1		Decrement the position of joint k
//
// Observations consist of the channels of an ObservationSpec, by
// default the distance to the goal point, the base roll, pitch, and
// yaw, the contact force magnitude of each foot, and the position of
// each joint. Each TimeStep additionally carries the key of the
// discretized observation.
//
// Rewards and episode endings are given by a Stand task.
//
// Catbot implements the environment.Environment interface.
type Catbot struct {
	*Stand
	sensors  *Sensors
	actuator Actuator
	obsSpec  ObservationSpec
	bins     *BinTable
	decoder  *ActionDecoder
	goal     r3.Vec
	goalSet  bool
	discount float64
	lastStep ts.TimeStep

	// Debug receives a breakdown of the reward terms on each step
	// if non-nil
	Debug io.Writer
}

// New constructs a new Catbot environment which reads the robot's
// state from sensors and sends joint targets to actuator. The
// returned TimeStep is computed from the current contents of sensors,
// so sensors should be ready before New is called.
func New(task *Stand, sensors *Sensors, actuator Actuator, c Config,
	discount float64) (*Catbot, ts.TimeStep, error) {
	obsSpec, err := NewObservationSpec(c)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	bins, err := NewBinTable(obsSpec)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	catbot := &Catbot{
		Stand:    task,
		sensors:  sensors,
		actuator: actuator,
		obsSpec:  obsSpec,
		bins:     bins,
		decoder:  NewActionDecoder(c.JointIncrement),
		discount: discount,
	}

	firstStep, err := catbot.first()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return catbot, firstStep, nil
}

// SetGoal sets the point the robot should stand at. The goal is kept
// across Resets until ClearGoal is called; the task's goal
// distribution is not sampled while a goal is set. If no step has been
// taken in the current episode, its first TimeStep is recomputed for
// the new goal.
func (c *Catbot) SetGoal(goal r3.Vec) {
	c.goal = goal
	c.goalSet = true

	if c.lastStep.First() {
		obs, key, err := c.observe(c.sensors.Snapshot())
		if err != nil {
			// Assembly only fails for channels rejected at construction
			panic(fmt.Sprintf("setGoal: %v", err))
		}
		c.lastStep.Observation = obs.Vec()
		c.lastStep.StateKey = key
	}
}

// ClearGoal returns goal selection to the task, so that a goal is
// sampled from its goal distribution at the start of each episode
func (c *Catbot) ClearGoal() {
	c.goalSet = false
}

// Goal returns the point the robot should stand at
func (c *Catbot) Goal() r3.Vec {
	return c.goal
}

// Sensors returns the sensor holder that the environment reads from
func (c *Catbot) Sensors() *Sensors {
	return c.sensors
}

// Bins returns the bin table used to discretize observations
func (c *Catbot) Bins() *BinTable {
	return c.bins
}

// Channels returns the observation channels in observation order
func (c *Catbot) Channels() ObservationSpec {
	return c.obsSpec
}

// Observation returns the observation of the latest Snapshot
func (c *Catbot) Observation() (Observation, error) {
	return Assemble(c.obsSpec, c.sensors.Snapshot(), c.goal)
}

// StateKey returns the discrete state key of an observation
func (c *Catbot) StateKey(obs Observation) (string, error) {
	state, err := c.bins.Discretize(obs)
	if err != nil {
		return "", fmt.Errorf("stateKey: %w", err)
	}
	return state.Key(), nil
}

// RewardAndDone returns the reward of the latest Snapshot and whether
// the robot has fallen. Once the robot has fallen, RewardAndDone
// returns the done reward until the next Reset.
func (c *Catbot) RewardAndDone() (float64, bool) {
	return c.Evaluate(c.sensors.Snapshot(), c.goal)
}

// DecodeAction returns the joint targets reached by taking action id
// from the latest joint positions
func (c *Catbot) DecodeAction(id int) ([]float64, error) {
	snap := c.sensors.Snapshot()
	return c.decoder.Decode(id, snap.JointPositions[:])
}

// Reset resets the environment and returns the first TimeStep of a
// new episode. If the task has a goal distribution and no goal was set
// with SetGoal, a new goal is sampled.
func (c *Catbot) Reset() (ts.TimeStep, error) {
	if r, ok := c.actuator.(Resetter); ok {
		if err := r.Reset(); err != nil {
			return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
		}
	}

	firstStep, err := c.first()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}
	return firstStep, nil
}

// first starts a new episode and returns its first TimeStep
func (c *Catbot) first() (ts.TimeStep, error) {
	c.Stand.Reset()
	if !c.goalSet {
		if goal := c.Start(); goal != nil {
			c.goal = r3.Vec{X: goal.AtVec(0), Y: goal.AtVec(1),
				Z: goal.AtVec(2)}
		}
	}

	obs, key, err := c.observe(c.sensors.Snapshot())
	if err != nil {
		return ts.TimeStep{}, err
	}

	c.lastStep = ts.New(ts.First, 0, c.discount, obs.Vec(), key, 0)
	return c.lastStep, nil
}

// observe returns the observation of a Snapshot and its state key
func (c *Catbot) observe(snap Snapshot) (Observation, string, error) {
	obs, err := Assemble(c.obsSpec, snap, c.goal)
	if err != nil {
		return nil, "", err
	}

	key, err := c.StateKey(obs)
	if err != nil {
		return nil, "", err
	}
	return obs, key, nil
}

// Step takes one environmental step given action a and returns the
// next TimeStep and a bool indicating whether or not the episode has
// ended. Actions are 1-dimensional and must hold an integral action id
// in [0, NumActions).
//
// The joint targets of the action are sent to the Actuator, after
// which the observation and reward are computed from a single copy
// of the latest Snapshot.
func (c *Catbot) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != ActionDims {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w: actions "+
			"should be %d-dimensional, have %d", ErrInvalidAction,
			ActionDims, a.Len())
	}

	action := a.AtVec(0)
	if action != math.Trunc(action) {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w: action %v is "+
			"not an integer", ErrInvalidAction, action)
	}

	targets, err := c.DecodeAction(int(action))
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}
	if err := c.actuator.Command(targets); err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}

	snap := c.sensors.Snapshot()
	obs, key, err := c.observe(snap)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}
	reward, _ := c.Evaluate(snap, c.goal)

	if c.Debug != nil {
		fmt.Fprintf(c.Debug, "step %d | action %v | %v | reward %.4f\n",
			c.lastStep.Number+1, actionTable[int(action)], c.LastTerms(),
			reward)
	}

	nextStep := ts.New(ts.Mid, reward, c.discount, obs.Vec(), key,
		c.lastStep.Number+1)

	// Check if the step ends the episode
	c.End(&nextStep)

	c.lastStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// LastTimeStep returns the last TimeStep that occurred in the
// environment
func (c *Catbot) LastTimeStep() ts.TimeStep {
	return c.lastStep
}

// ActionSpec returns the action specification of the environment
func (c *Catbot) ActionSpec() spec.Environment {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{0})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(NumActions - 1)})

	return spec.NewEnvironment(shape, spec.Action, lowerBound,
		upperBound, spec.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (c *Catbot) ObservationSpec() spec.Environment {
	return c.obsSpec.Spec()
}

// DiscountSpec returns the discounting specification of the environment
func (c *Catbot) DiscountSpec() spec.Environment {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{c.discount})
	upperBound := mat.NewVecDense(1, []float64{c.discount})

	return spec.NewEnvironment(shape, spec.Discount, lowerBound,
		upperBound, spec.Continuous)
}

func (c *Catbot) String() string {
	snap := c.sensors.Snapshot()
	roll, pitch, yaw := snap.RPY()

	msg := "Catbot  |  Height: %.3f  |  Roll: %.3f  |  Pitch: %.3f  |  " +
		"Yaw: %.3f  |  Distance: %.3f  |  %v"
	return fmt.Sprintf(msg, snap.Height(), roll, pitch, yaw,
		snap.DistanceTo(c.goal), c.Status())
}
