package tensor

import (
	"errors"

	"github.com/fumitoshi0524/psiNet/internal/parallel"
)

func MatMul(a, b *Tensor) (*Tensor, error) {
	if len(a.shape) != 2 || len(b.shape) != 2 {
		return nil, errors.New("matmul expects rank 2 tensors")
	}
	aRows, aCols := a.shape[0], a.shape[1]
	bRows, bCols := b.shape[0], b.shape[1]
	if aCols != bRows {
		return nil, errors.New("incompatible shapes for matmul")
	}
	out := Zeros(aRows, bCols)
	parallel.For(aRows, func(start, end int) {
		for i := start; i < end; i++ {
			offsetOut := i * bCols
			offsetA := i * aCols
			for k := 0; k < aCols; k++ {
				aik := a.data[offsetA+k]
				offsetB := k * bCols
				for j := 0; j < bCols; j++ {
					out.data[offsetOut+j] += aik * b.data[offsetB+j]
				}
			}
		}
	})
	return out, nil
}
