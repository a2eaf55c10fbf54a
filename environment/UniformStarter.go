package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting vectors uniformly from a box. A
// degenerate interval (Min == Max) pins its dimension to that value.
type UniformStarter struct {
	bounds []r1.Interval
	seed   uint64
	rand   *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter sampling dimension i
// uniformly from bounds[i]
func NewUniformStarter(bounds []r1.Interval, seed uint64) (*UniformStarter,
	error) {
	for i, b := range bounds {
		if b.Max < b.Min {
			return nil, fmt.Errorf("newUniformStarter: bound %d has max "+
				"%v < min %v", i, b.Max, b.Min)
		}
	}

	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return &UniformStarter{bounds, seed, rand}, nil
}

// Start returns a starting vector
func (u *UniformStarter) Start() *mat.VecDense {
	sample := u.rand.Rand(nil)
	return mat.NewVecDense(len(sample), sample)
}
