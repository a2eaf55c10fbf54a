package wrappers

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/catbotrl/catbot/environment/catbot"
)

// hold is an Actuator which moves joints to their targets instantly
type hold struct {
	sensors *catbot.Sensors
}

func (h hold) Command(targets []float64) error {
	snap := h.sensors.Snapshot()
	copy(snap.JointPositions[:], targets)
	h.sensors.Replace(snap)
	return nil
}

func newCatbot(t *testing.T) *catbot.Catbot {
	t.Helper()

	c := catbot.DefaultConfig()
	task, err := catbot.NewStand(nil, 0, c)
	if err != nil {
		t.Fatal(err)
	}

	sensors := catbot.NewSensors()
	sensors.Replace(catbot.Snapshot{
		Position:          r3.Vec{Z: 1},
		Orientation:       quat.Number{Real: 1},
		LeftContactForce:  r3.Vec{Z: catbot.DefaultDesiredForce},
		RightContactForce: r3.Vec{Z: catbot.DefaultDesiredForce},
	})

	env, _, err := catbot.New(task, sensors, hold{sensors}, c, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	env.SetGoal(r3.Vec{Z: 1})
	return env
}

func TestDiscrete(t *testing.T) {
	env := newCatbot(t)
	d, first, err := NewDiscrete(env, env.Bins())
	if err != nil {
		t.Fatal(err)
	}

	if first.Observation.Len() != catbot.NumChannels {
		t.Fatalf("newDiscrete: have %d dims want %d",
			first.Observation.Len(), catbot.NumChannels)
	}

	step, _, err := d.Step(mat.NewVecDense(1, []float64{0}))
	if err != nil {
		t.Fatal(err)
	}

	obs, err := env.Observation()
	if err != nil {
		t.Fatal(err)
	}
	state, err := env.Bins().Discretize(obs)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(step.Observation, state.Vec()) {
		t.Errorf("step: have(%v) want(%v)", step.Observation.RawVector().Data,
			state)
	}
	if step.StateKey != state.Key() {
		t.Errorf("step: state key have(%v) want(%v)", step.StateKey,
			state.Key())
	}

	for i := 0; i < step.Observation.Len(); i++ {
		v := step.Observation.AtVec(i)
		if v != math.Trunc(v) || v < 0 || v > float64(catbot.DefaultBins) {
			t.Errorf("step: index %v not a bin index", v)
		}
	}

	upper := d.ObservationSpec().UpperBound
	if upper.AtVec(0) != float64(catbot.DefaultBins) {
		t.Errorf("observationSpec: upper bound have(%v) want(%v)",
			upper.AtVec(0), catbot.DefaultBins)
	}
	if !mat.Equal(d.LastTimeStep().Observation, step.Observation) {
		t.Error("lastTimeStep: observation was not discretized")
	}
}

func TestAverageReward(t *testing.T) {
	env := newCatbot(t)
	a, first, err := NewAverageReward(env, 0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if first.Discount != 1 {
		t.Errorf("newAverageReward: discount have(%v) want(1)",
			first.Discount)
	}

	// Moving a joint forward and back gives rewards of 9.95 and 10
	rewards := []float64{9.95, 10}
	avg := 0.0
	for i, r := range rewards {
		step, _, err := a.Step(mat.NewVecDense(1, []float64{float64(i)}))
		if err != nil {
			t.Fatal(err)
		}

		avg += 0.5 * (r - avg)
		if math.Abs(step.Reward-(r-avg)) > 1e-9 {
			t.Errorf("step %d: reward have(%v) want(%v)", i, step.Reward,
				r-avg)
		}
		if step.Discount != 1 {
			t.Errorf("step %d: discount have(%v) want(1)", i, step.Discount)
		}
	}

	if math.Abs(a.AverageRewardEstimate()-avg) > 1e-9 {
		t.Errorf("averageRewardEstimate: have(%v) want(%v)",
			a.AverageRewardEstimate(), avg)
	}

	if _, _, err := NewAverageReward(env, 0, 0); err == nil {
		t.Error("newAverageReward: expected an error for a zero learning " +
			"rate")
	}
}
