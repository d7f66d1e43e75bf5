// Package space enumerates the visible state space of a binary model and
// evaluates the partition constant over it. Everything here is exact
// enumeration: the state space has 2^n configurations and callers are
// expected to keep n small enough to hold it in memory.
package space

import (
	"github.com/fumitoshi0524/psiNet/tensor"
)

// Model is the slice of a wavefunction the partition sum needs: the
// unnormalized probability it assigns to a single configuration.
type Model interface {
	UnnormalizedProbability(v []float64) float64
}

// Generate returns all 2^n binary configurations of n sites as a [2^n, n]
// tensor. Row i holds the binary expansion of i, most significant bit at
// site 0. The device identifies the target compute context; tensors are
// host-resident regardless.
func Generate(n int, dev tensor.Device) *tensor.Tensor {
	rows := 1 << uint(n)
	out := tensor.Zeros(rows, n)
	for i := 0; i < rows; i++ {
		d := i
		for j := 0; j < n; j++ {
			out.Set(float64(d%2), i, n-j-1)
			d /= 2
		}
	}
	return out
}

// Index maps a configuration back to its position in the enumeration order
// produced by Generate.
func Index(v []float64) int {
	idx := 0
	for _, bit := range v {
		idx = idx<<1 | int(bit)
	}
	return idx
}

// Partition sums the model's unnormalized probability over every
// configuration in vis. It must be re-evaluated after any parameter
// mutation; the result is never cached.
func Partition(m Model, vis *tensor.Tensor) float64 {
	rows := vis.Shape()[0]
	z := 0.0
	for i := 0; i < rows; i++ {
		z += m.UnnormalizedProbability(vis.Row(i))
	}
	return z
}
