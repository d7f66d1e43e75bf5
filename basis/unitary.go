package basis

import (
	"math"

	"github.com/fumitoshi0524/psiNet/tensor"
)

// Unitaries returns the dictionary of local single-site rotations, one per
// basis symbol. Each entry is a 2x2 complex operator stored as a [2, 2, 2]
// tensor indexed [component, input bit, output bit].
func Unitaries() map[string]*tensor.Tensor {
	s := 1.0 / math.Sqrt2
	return map[string]*tensor.Tensor{
		"X": tensor.MustNew([]float64{
			s, s,
			s, -s,

			0, 0,
			0, 0,
		}, 2, 2, 2),
		"Y": tensor.MustNew([]float64{
			s, 0,
			s, 0,

			0, -s,
			0, s,
		}, 2, 2, 2),
		"Z": tensor.MustNew([]float64{
			1, 0,
			0, 1,

			0, 0,
			0, 0,
		}, 2, 2, 2),
	}
}

// Entry selects the complex element U[in, out] of a local unitary as a [2]
// scalar.
func Entry(u *tensor.Tensor, in, out int) *tensor.Tensor {
	return tensor.MustNew([]float64{u.At(0, in, out), u.At(1, in, out)}, 2)
}
