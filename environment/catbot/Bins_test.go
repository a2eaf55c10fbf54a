package catbot

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func defaultBins(t *testing.T) (ObservationSpec, *BinTable) {
	t.Helper()

	o, err := NewObservationSpec(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBinTable(o)
	if err != nil {
		t.Fatal(err)
	}
	return o, b
}

func TestBinEdges(t *testing.T) {
	o, b := defaultBins(t)

	if b.Len() != NumChannels {
		t.Fatalf("len: have(%d) want(%d)", b.Len(), NumChannels)
	}

	for i := 0; i < b.Len(); i++ {
		c := o.At(i)
		edges := b.Edges(i)

		if len(edges) != DefaultBins {
			t.Errorf("edges: channel %v has %d edges, want %d", c.Channel,
				len(edges), DefaultBins)
		}
		if edges[0] != c.Range.Min || edges[len(edges)-1] != c.Range.Max {
			t.Errorf("edges: channel %v spans [%v, %v], want [%v, %v]",
				c.Channel, edges[0], edges[len(edges)-1], c.Range.Min,
				c.Range.Max)
		}

		step := (c.Range.Max - c.Range.Min) / float64(DefaultBins-1)
		for k := 1; k < len(edges); k++ {
			if edges[k] < edges[k-1] {
				t.Errorf("edges: channel %v decreases at edge %d", c.Channel,
					k)
			}
			if !scalar.EqualWithinAbs(edges[k]-edges[k-1], step, 1e-9) {
				t.Errorf("edges: channel %v step %d have(%v) want(%v)",
					c.Channel, k, edges[k]-edges[k-1], step)
			}
		}
	}
}

func TestBinEdgesCopied(t *testing.T) {
	_, b := defaultBins(t)

	edges := b.Edges(0)
	edges[0] = math.Inf(1)
	if b.Edges(0)[0] == math.Inf(1) {
		t.Error("edges: modifying the returned edges changed the table")
	}
}

func TestNewBinTableInvalid(t *testing.T) {
	c := DefaultConfig()
	o, err := NewObservationSpec(c)
	if err != nil {
		t.Fatal(err)
	}

	// Bypass Config validation to check the table's own checks
	o.channels[0].Bins = 1
	if _, err := NewBinTable(o); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("newBinTable: have(%v) want(%v)", err, ErrInvalidConfig)
	}

	o.channels[0].Bins = DefaultBins
	o.channels[0].Range.Max = o.channels[0].Range.Min
	if _, err := NewBinTable(o); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("newBinTable: have(%v) want(%v)", err, ErrInvalidConfig)
	}
}

func TestDigitize(t *testing.T) {
	edges := []float64{0, 1, 2, 3}

	tests := []struct {
		value float64
		want  int
	}{
		{-100, 0},
		{-0.5, 0},
		{0, 1},
		{0.5, 1},
		{1, 2},
		{2.999, 3},
		{3, 4},
		{100, 4},
		{math.Inf(-1), 0},
		{math.Inf(1), 4},
		{math.NaN(), 4},
	}

	for _, test := range tests {
		if have := Digitize(test.value, edges); have != test.want {
			t.Errorf("digitize(%v): have(%d) want(%d)", test.value, have,
				test.want)
		}
	}
}

func TestDiscretizeMonotonic(t *testing.T) {
	o, b := defaultBins(t)

	for i := 0; i < o.Len(); i++ {
		rng := o.At(i).Range
		width := rng.Max - rng.Min

		prev := -1
		for k := -50; k <= 150; k++ {
			obs := make(Observation, o.Len())
			obs[i] = rng.Min + width*float64(k)/100

			state, err := b.Discretize(obs)
			if err != nil {
				t.Fatal(err)
			}
			if state[i] < prev {
				t.Fatalf("discretize: channel %v not monotonic at %v",
					o.At(i).Channel, obs[i])
			}
			prev = state[i]
		}
	}
}

func TestDiscretizeClamps(t *testing.T) {
	o, b := defaultBins(t)

	low := make(Observation, o.Len())
	high := make(Observation, o.Len())
	for i := range low {
		low[i] = -1e9
		high[i] = 1e9
	}

	lowState, err := b.Discretize(low)
	if err != nil {
		t.Fatal(err)
	}
	highState, err := b.Discretize(high)
	if err != nil {
		t.Fatal(err)
	}

	for i := range lowState {
		if lowState[i] != 0 {
			t.Errorf("discretize: channel %v below range have(%d) want(0)",
				o.At(i).Channel, lowState[i])
		}
		if highState[i] != b.MaxIndex(i) {
			t.Errorf("discretize: channel %v above range have(%d) want(%d)",
				o.At(i).Channel, highState[i], b.MaxIndex(i))
		}
	}
}

func TestDiscretizeMaxInTopBin(t *testing.T) {
	o, b := defaultBins(t)

	obs := make(Observation, o.Len())
	for i := range obs {
		obs[i] = o.At(i).Range.Max
	}

	state, err := b.Discretize(obs)
	if err != nil {
		t.Fatal(err)
	}
	for i, index := range state {
		if index != DefaultBins {
			t.Errorf("discretize: channel %v max have(%d) want(%d)",
				o.At(i).Channel, index, DefaultBins)
		}
	}
}

func TestDiscretizeLength(t *testing.T) {
	_, b := defaultBins(t)

	if _, err := b.Discretize(make(Observation, 3)); err == nil {
		t.Error("discretize: expected an error for a short observation")
	}
}

func TestDiscretizeVec(t *testing.T) {
	o, b := defaultBins(t)

	obs := make(Observation, o.Len())
	for i := range obs {
		obs[i] = (o.At(i).Range.Min + o.At(i).Range.Max) / 2
	}

	want, err := b.Discretize(obs)
	if err != nil {
		t.Fatal(err)
	}
	have, err := b.DiscretizeVec(obs.Vec())
	if err != nil {
		t.Fatal(err)
	}
	if have.Key() != want.Key() {
		t.Errorf("discretizeVec: have(%v) want(%v)", have.Key(), want.Key())
	}
}

func TestDiscreteStateKey(t *testing.T) {
	d := DiscreteState{0, 3, 9, 10}

	if have := d.Key(); have != "03910" {
		t.Errorf("key: have(%q) want(%q)", have, "03910")
	}
	if have := d.KeyWithSeparator("-"); have != "0-3-9-10" {
		t.Errorf("keyWithSeparator: have(%q) want(%q)", have, "0-3-9-10")
	}
	if !mat.Equal(d.Vec(), mat.NewVecDense(4, []float64{0, 3, 9, 10})) {
		t.Errorf("vec: have(%v) want([0 3 9 10])", d.Vec().RawVector().Data)
	}
}
