package tensor

import (
	"errors"

	"github.com/fumitoshi0524/psiNet/internal/parallel"
)

func ensureSameShape(a, b *Tensor) error {
	if len(a.shape) != len(b.shape) {
		return errors.New("shape rank mismatch")
	}
	for i, dim := range a.shape {
		if dim != b.shape[i] {
			return errors.New("shape mismatch")
		}
	}
	return nil
}

func Add(a, b *Tensor) (*Tensor, error) {
	if err := ensureSameShape(a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.shape...)
	parallel.For(len(out.data), func(start, end int) {
		for i := start; i < end; i++ {
			out.data[i] = a.data[i] + b.data[i]
		}
	})
	return out, nil
}

func Sub(a, b *Tensor) (*Tensor, error) {
	if err := ensureSameShape(a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.shape...)
	parallel.For(len(out.data), func(start, end int) {
		for i := start; i < end; i++ {
			out.data[i] = a.data[i] - b.data[i]
		}
	})
	return out, nil
}

func Mul(a, b *Tensor) (*Tensor, error) {
	if err := ensureSameShape(a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.shape...)
	parallel.For(len(out.data), func(start, end int) {
		for i := start; i < end; i++ {
			out.data[i] = a.data[i] * b.data[i]
		}
	})
	return out, nil
}
