package random

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/spec"
	"github.com/catbotrl/catbot/timestep"
)

// actionsOnly is an environment which only describes its actions
type actionsOnly struct {
	environment.Environment
	actions     int
	cardinality spec.Cardinality
}

func (a actionsOnly) ActionSpec() spec.Environment {
	return spec.NewEnvironment(mat.NewVecDense(1, nil), spec.Action,
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{float64(a.actions - 1)}),
		a.cardinality)
}

func TestRandomActions(t *testing.T) {
	env := actionsOnly{actions: 40, cardinality: spec.Discrete}
	r, err := New(env, Config{}, 1)
	if err != nil {
		t.Fatal(err)
	}

	counts := make([]int, 40)
	for i := 0; i < 8000; i++ {
		a := r.SelectAction(timestep.TimeStep{}).AtVec(0)
		if a != math.Trunc(a) || a < 0 || a >= 40 {
			t.Fatalf("selectAction: invalid action %v", a)
		}
		counts[int(a)]++
	}
	for i, c := range counts {
		if c == 0 {
			t.Errorf("selectAction: action %d never selected", i)
		}
	}
}

func TestRandomWeights(t *testing.T) {
	env := actionsOnly{actions: 3, cardinality: spec.Discrete}
	r, err := New(env, Config{Weights: []float64{0, 1, 0}}, 1)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		if a := r.SelectAction(timestep.TimeStep{}).AtVec(0); a != 1 {
			t.Fatalf("selectAction: have(%v) want(1)", a)
		}
	}

	if _, err := New(env, Config{Weights: []float64{1, 1}}, 1); err == nil {
		t.Error("new: expected an error for mismatched weights")
	}
	if _, err := New(env, Config{Weights: []float64{0, 0, 0}}, 1); err == nil {
		t.Error("new: expected an error for zero weights")
	}
	if _, err := New(env, Config{Weights: []float64{1, -1, 0}}, 1); err == nil {
		t.Error("new: expected an error for negative weights")
	}
}

func TestRandomContinuous(t *testing.T) {
	env := actionsOnly{actions: 3, cardinality: spec.Continuous}
	if _, err := New(env, Config{}, 1); err == nil {
		t.Error("new: expected an error for continuous actions")
	}
}

func TestRandomEval(t *testing.T) {
	env := actionsOnly{actions: 3, cardinality: spec.Discrete}
	a, err := Config{}.CreateAgent(env, 1)
	if err != nil {
		t.Fatal(err)
	}

	a.Eval()
	if !a.IsEval() {
		t.Error("eval: agent not in evaluation mode")
	}
	a.Train()
	if a.IsEval() {
		t.Error("train: agent in evaluation mode")
	}
}
