package cplx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumitoshi0524/psiNet/tensor"
)

func TestScalarMult(t *testing.T) {
	// (1+2i) * (3-i) = 5+5i
	s := Scalar(1, 2)
	v := Scalar(3, -1)
	out, err := ScalarMult(s, v)
	require.NoError(t, err)
	assert.InDelta(t, 5, out.At(0), 1e-12)
	assert.InDelta(t, 5, out.At(1), 1e-12)

	// Scalar times a [2, 2] vector multiplies every column.
	vec, err := Make(tensor.MustNew([]float64{1, 0}, 2), tensor.MustNew([]float64{0, 1}, 2))
	require.NoError(t, err)
	out, err = ScalarMult(Scalar(0, 1), vec)
	require.NoError(t, err)
	assert.True(t, tensor.AlmostEqualSlices([]float64{0, -1, 1, 0}, out.Data(), 1e-12))
}

func TestMultAndConj(t *testing.T) {
	a := Scalar(1, 1)
	conj, err := Conj(a)
	require.NoError(t, err)
	prod, err := Mult(a, conj)
	require.NoError(t, err)
	assert.InDelta(t, 2, prod.At(0), 1e-12)
	assert.InDelta(t, 0, prod.At(1), 1e-12)
}

func TestMatMulVector(t *testing.T) {
	// The i-phase gate [[1,0],[0,i]] applied to (1, 1).
	gate := tensor.MustNew([]float64{
		1, 0,
		0, 0,

		0, 0,
		0, 1,
	}, 2, 2, 2)
	vec := tensor.MustNew([]float64{1, 1, 0, 0}, 2, 2)
	out, err := MatMul(gate, vec)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, out.Shape())
	assert.True(t, tensor.AlmostEqualSlices([]float64{1, 0, 0, 1}, out.Data(), 1e-12))
}

func TestMatMulMatrix(t *testing.T) {
	// i*I squared is -I.
	iI := tensor.MustNew([]float64{
		0, 0,
		0, 0,

		1, 0,
		0, 1,
	}, 2, 2, 2)
	out, err := MatMul(iI, iI)
	require.NoError(t, err)
	assert.True(t, tensor.AlmostEqualSlices([]float64{
		-1, 0,
		0, -1,

		0, 0,
		0, 0,
	}, out.Data(), 1e-12))
}

func TestDivideAndNorm(t *testing.T) {
	a := Scalar(2, 3)
	quot, err := Divide(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1, quot.At(0), 1e-12)
	assert.InDelta(t, 0, quot.At(1), 1e-12)

	assert.InDelta(t, 13, Norm(a), 1e-12)
	assert.InDelta(t, math.Sqrt(13), Abs(a), 1e-12)

	vec := tensor.MustNew([]float64{3, 0, 4, 0}, 2, 2)
	assert.InDelta(t, 25, NormAt(vec, 0), 1e-12)
	assert.InDelta(t, 0, NormAt(vec, 1), 1e-12)
}

func TestShapeValidation(t *testing.T) {
	_, err := ScalarMult(tensor.MustNew([]float64{1, 2, 3}, 3), Scalar(1, 0))
	require.Error(t, err)
	_, err = MatMul(Scalar(1, 0), Scalar(1, 0))
	require.Error(t, err)
	_, err = Make(tensor.Zeros(2), tensor.Zeros(3))
	require.Error(t, err)
}
