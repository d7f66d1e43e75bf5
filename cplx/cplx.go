// Package cplx implements arithmetic over complex values stored as paired
// real tensors: index 0 of the leading dimension holds real parts, index 1
// imaginary parts. A complex scalar is a [2] tensor, a complex vector of
// length d is a [2, d] tensor, a complex m-by-n matrix is a [2, m, n] tensor.
package cplx

import (
	"errors"
	"math"

	"github.com/fumitoshi0524/psiNet/tensor"
)

var errNotComplex = errors.New("complex tensor must have leading dimension 2")

func checkComplex(t *tensor.Tensor) error {
	shape := t.Shape()
	if len(shape) == 0 || shape[0] != 2 {
		return errNotComplex
	}
	return nil
}

// Scalar builds a [2] tensor from real and imaginary parts.
func Scalar(re, im float64) *tensor.Tensor {
	return tensor.MustNew([]float64{re, im}, 2)
}

// Make pairs a real tensor with an imaginary one of the same shape.
func Make(re, im *tensor.Tensor) (*tensor.Tensor, error) {
	reVals := re.Data()
	imVals := im.Data()
	if len(reVals) != len(imVals) {
		return nil, errors.New("real and imaginary parts must match in size")
	}
	shape := append([]int{2}, re.Shape()...)
	return tensor.New(append(reVals, imVals...), shape...)
}

// Real extracts the real component as a tensor of the trailing shape.
func Real(t *tensor.Tensor) (*tensor.Tensor, error) {
	return component(t, 0)
}

// Imag extracts the imaginary component as a tensor of the trailing shape.
func Imag(t *tensor.Tensor) (*tensor.Tensor, error) {
	return component(t, 1)
}

func component(t *tensor.Tensor, c int) (*tensor.Tensor, error) {
	if err := checkComplex(t); err != nil {
		return nil, err
	}
	shape := t.Shape()[1:]
	if len(shape) == 0 {
		shape = []int{1}
	}
	half := t.Numel() / 2
	vals := t.Values()
	return tensor.New(append([]float64(nil), vals[c*half:(c+1)*half]...), shape...)
}

func Add(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkComplex(a); err != nil {
		return nil, err
	}
	return tensor.Add(a, b)
}

func Sub(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkComplex(a); err != nil {
		return nil, err
	}
	return tensor.Sub(a, b)
}

// ScalarMult multiplies every complex element of t by the complex scalar s.
func ScalarMult(s, t *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkComplex(s); err != nil {
		return nil, err
	}
	if s.Numel() != 2 {
		return nil, errors.New("ScalarMult expects a [2] scalar")
	}
	if err := checkComplex(t); err != nil {
		return nil, err
	}
	sr, si := s.At(0), s.At(1)
	half := t.Numel() / 2
	vals := t.Values()
	out := tensor.Zeros(t.Shape()...)
	outVals := out.Values()
	for i := 0; i < half; i++ {
		re, im := vals[i], vals[half+i]
		outVals[i] = sr*re - si*im
		outVals[half+i] = sr*im + si*re
	}
	return out, nil
}

// Mult multiplies two complex tensors elementwise.
func Mult(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkComplex(a); err != nil {
		return nil, err
	}
	if err := checkComplex(b); err != nil {
		return nil, err
	}
	if a.Numel() != b.Numel() {
		return nil, errors.New("Mult expects matching shapes")
	}
	half := a.Numel() / 2
	av, bv := a.Values(), b.Values()
	out := tensor.Zeros(a.Shape()...)
	ov := out.Values()
	for i := 0; i < half; i++ {
		ov[i] = av[i]*bv[i] - av[half+i]*bv[half+i]
		ov[half+i] = av[i]*bv[half+i] + av[half+i]*bv[i]
	}
	return out, nil
}

// MatMul computes the complex matrix product of a [2, m, n] tensor with a
// [2, n, p] matrix or a [2, n] vector.
func MatMul(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkComplex(a); err != nil {
		return nil, err
	}
	if err := checkComplex(b); err != nil {
		return nil, err
	}
	aShape := a.Shape()
	if len(aShape) != 3 {
		return nil, errors.New("MatMul expects a [2, m, n] left operand")
	}
	bShape := b.Shape()
	vector := len(bShape) == 2
	if vector {
		reshaped, err := tensor.New(b.Data(), 2, bShape[1], 1)
		if err != nil {
			return nil, err
		}
		b = reshaped
		bShape = b.Shape()
	}
	if len(bShape) != 3 || aShape[2] != bShape[1] {
		return nil, errors.New("MatMul shape mismatch")
	}
	ar, err := component(a, 0)
	if err != nil {
		return nil, err
	}
	ai, _ := component(a, 1)
	br, _ := component(b, 0)
	bi, _ := component(b, 1)

	rr, err := tensor.MatMul(ar, br)
	if err != nil {
		return nil, err
	}
	ii, _ := tensor.MatMul(ai, bi)
	ri, _ := tensor.MatMul(ar, bi)
	ir, _ := tensor.MatMul(ai, br)

	re, err := tensor.Sub(rr, ii)
	if err != nil {
		return nil, err
	}
	im, _ := tensor.Add(ri, ir)
	out, err := Make(re, im)
	if err != nil {
		return nil, err
	}
	if vector {
		return tensor.New(out.Data(), 2, aShape[1])
	}
	return out, nil
}

// Conj returns the elementwise complex conjugate.
func Conj(t *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkComplex(t); err != nil {
		return nil, err
	}
	out := t.Clone()
	half := out.Numel() / 2
	vals := out.Values()
	for i := half; i < 2*half; i++ {
		vals[i] = -vals[i]
	}
	return out, nil
}

// Divide computes the quotient a/b of two complex scalars.
func Divide(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if a.Numel() != 2 || b.Numel() != 2 {
		return nil, errors.New("Divide expects [2] scalars")
	}
	den := Norm(b)
	br, bi := b.At(0), b.At(1)
	ar, ai := a.At(0), a.At(1)
	return Scalar((ar*br+ai*bi)/den, (ai*br-ar*bi)/den), nil
}

// Norm returns the squared modulus of a [2] scalar.
func Norm(z *tensor.Tensor) float64 {
	return z.At(0)*z.At(0) + z.At(1)*z.At(1)
}

// NormAt returns the squared modulus of column i of a [2, d] vector.
func NormAt(t *tensor.Tensor, i int) float64 {
	re, im := t.At(0, i), t.At(1, i)
	return re*re + im*im
}

// Abs returns the modulus of a [2] scalar.
func Abs(z *tensor.Tensor) float64 {
	return math.Hypot(z.At(0), z.At(1))
}
