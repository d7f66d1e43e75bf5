package basis

import (
	"fmt"

	"github.com/fumitoshi0524/psiNet/tensor"
)

// LoadTargetPsi splits a flat block of (real, imaginary) rows evenly across
// the given bases. The block has shape [rows, 2]; rows must divide exactly
// by the number of bases, giving one [2, D] amplitude vector per label.
func LoadTargetPsi(bases []string, data *tensor.Tensor) (map[string]*tensor.Tensor, error) {
	if len(bases) == 0 {
		return nil, fmt.Errorf("no bases given")
	}
	shape := data.Shape()
	if len(shape) != 2 || shape[1] != 2 {
		return nil, fmt.Errorf("target data must have shape [rows, 2], got %v", shape)
	}
	rows := shape[0]
	if rows%len(bases) != 0 {
		return nil, fmt.Errorf("%d target rows do not split across %d bases", rows, len(bases))
	}
	d := rows / len(bases)
	psi := make(map[string]*tensor.Tensor, len(bases))
	for b, label := range bases {
		vec := tensor.Zeros(2, d)
		for i := 0; i < d; i++ {
			vec.Set(data.At(b*d+i, 0), 0, i)
			vec.Set(data.At(b*d+i, 1), 1, i)
		}
		psi[label] = vec
	}
	return psi, nil
}
