package catbot

import (
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Digitize returns the bin index of value given ascending bin edges.
// The index is the number of edges less than or equal to value:
//
//	value < edges[0]                  ->  0
//	edges[k-1] <= value < edges[k]    ->  k
//	value >= edges[len(edges)-1]      ->  len(edges)
//
// Values outside the edges fall into the boundary bins rather than
// causing an error so that sensor outliers do not interrupt control.
// NaN falls into the last bin.
func Digitize(value float64, edges []float64) int {
	return sort.Search(len(edges), func(i int) bool {
		return edges[i] > value
	})
}

// DiscreteState holds one bin index per observation channel
type DiscreteState []int

// Key returns the bin indices concatenated in channel order without a
// separator. Keys are only unambiguous when every index is a single
// digit, that is, when channels have fewer than 10 bin edges. Use
// KeyWithSeparator otherwise.
func (d DiscreteState) Key() string {
	return d.KeyWithSeparator("")
}

// KeyWithSeparator returns the bin indices in channel order joined
// by sep
func (d DiscreteState) KeyWithSeparator(sep string) string {
	var b strings.Builder
	for i, index := range d {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.Itoa(index))
	}
	return b.String()
}

// Vec returns the bin indices as a vector
func (d DiscreteState) Vec() *mat.VecDense {
	data := make([]float64, len(d))
	for i, index := range d {
		data[i] = float64(index)
	}
	return mat.NewVecDense(len(data), data)
}
