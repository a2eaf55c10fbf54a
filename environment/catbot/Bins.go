package catbot

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BinTable holds the bin edges of each channel in an ObservationSpec.
// Edges are linearly spaced over the channel's range, including both
// endpoints. A BinTable is immutable once constructed.
type BinTable struct {
	edges [][]float64
}

// NewBinTable builds the bin edges for each channel of the spec
func NewBinTable(o ObservationSpec) (*BinTable, error) {
	edges := make([][]float64, o.Len())
	for i := range edges {
		c := o.At(i)
		if c.Bins < 2 {
			return nil, fmt.Errorf("newBinTable: %w: channel %v has %d "+
				"bins, need at least 2", ErrInvalidConfig, c.Channel, c.Bins)
		}
		if !(c.Range.Max > c.Range.Min) {
			return nil, fmt.Errorf("newBinTable: %w: channel %v has range "+
				"[%v, %v]", ErrInvalidConfig, c.Channel, c.Range.Min,
				c.Range.Max)
		}

		edges[i] = floats.Span(make([]float64, c.Bins), c.Range.Min,
			c.Range.Max)

		// Pin the last edge so that the channel maximum always lands in
		// the top bin regardless of rounding in the step
		edges[i][c.Bins-1] = c.Range.Max
	}
	return &BinTable{edges}, nil
}

// Len returns the number of channels in the table
func (b *BinTable) Len() int {
	return len(b.edges)
}

// Edges returns a copy of the bin edges of channel i
func (b *BinTable) Edges(i int) []float64 {
	e := make([]float64, len(b.edges[i]))
	copy(e, b.edges[i])
	return e
}

// MaxIndex returns the largest bin index of channel i, which is the
// number of edges of that channel
func (b *BinTable) MaxIndex(i int) int {
	return len(b.edges[i])
}

// Discretize maps each observation value to the bin index of its
// channel. The observation must have one value per channel.
func (b *BinTable) Discretize(obs Observation) (DiscreteState, error) {
	if len(obs) != len(b.edges) {
		return nil, fmt.Errorf("discretize: observation has %d values "+
			"for %d channels", len(obs), len(b.edges))
	}

	state := make(DiscreteState, len(obs))
	for i, v := range obs {
		state[i] = Digitize(v, b.edges[i])
	}
	return state, nil
}

// DiscretizeVec discretizes an observation held in a vector
func (b *BinTable) DiscretizeVec(v mat.Vector) (DiscreteState, error) {
	obs := make(Observation, v.Len())
	for i := range obs {
		obs[i] = v.AtVec(i)
	}
	return b.Discretize(obs)
}
