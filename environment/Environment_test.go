package environment

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/catbotrl/catbot/timestep"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(5)

	for i := 0; i < 5; i++ {
		step := timestep.New(timestep.Mid, 0, 1, mat.NewVecDense(1, nil),
			"", i)
		if limit.End(&step) {
			t.Errorf("end: step %d should not end the episode", i)
		}
	}

	step := timestep.New(timestep.Mid, 0, 1, mat.NewVecDense(1, nil), "", 5)
	if !limit.End(&step) {
		t.Fatal("end: step 5 should end the episode")
	}
	if !step.Last() || step.EndType() != timestep.Timeout {
		t.Errorf("end: have(%v, %v) want(Last, Timeout)", step.StepType,
			step.EndType())
	}
}

func TestStepLimitDisabled(t *testing.T) {
	limit := NewStepLimit(0)
	step := timestep.New(timestep.Mid, 0, 1, mat.NewVecDense(1, nil), "",
		1_000_000)
	if limit.End(&step) {
		t.Error("end: a zero limit should never end an episode")
	}
}

func TestFunctionEnder(t *testing.T) {
	ender := NewFunctionEnder(func(t *timestep.TimeStep) bool {
		return t.Observation.AtVec(0) < 0
	}, timestep.TerminalStateReached)

	step := timestep.New(timestep.Mid, 0, 1,
		mat.NewVecDense(1, []float64{0.5}), "", 3)
	if ender.End(&step) {
		t.Errorf("end: have(%v) want a mid timestep", step)
	}
	if !step.Mid() {
		t.Errorf("end: step type changed to %v", step.StepType)
	}

	step = timestep.New(timestep.Mid, 0, 1,
		mat.NewVecDense(1, []float64{-0.5}), "", 4)
	if !ender.End(&step) {
		t.Fatal("end: a negative observation should end the episode")
	}
	if !step.Last() || step.EndType() != timestep.TerminalStateReached {
		t.Errorf("end: have(%v, %v) want(Last, TerminalStateReached)",
			step.StepType, step.EndType())
	}
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: -1, Max: 1}, {Min: 2, Max: 2}}
	s, err := NewUniformStarter(bounds, 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		v := s.Start()
		if v.Len() != 2 {
			t.Fatalf("start: have length %d want 2", v.Len())
		}
		if v.AtVec(0) < -1 || v.AtVec(0) > 1 {
			t.Errorf("start: %v outside [-1, 1]", v.AtVec(0))
		}
		if v.AtVec(1) != 2 {
			t.Errorf("start: degenerate dimension have(%v) want(2)",
				v.AtVec(1))
		}
	}
}

func TestUniformStarterInvalidBounds(t *testing.T) {
	_, err := NewUniformStarter([]r1.Interval{{Min: 1, Max: 0}}, 1)
	if err == nil {
		t.Error("newUniformStarter: expected error for max < min")
	}
}
