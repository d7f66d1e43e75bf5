package basis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumitoshi0524/psiNet/basis"
	"github.com/fumitoshi0524/psiNet/cplx"
	"github.com/fumitoshi0524/psiNet/tensor"
)

func TestNormalizeStripsWhitespace(t *testing.T) {
	got := basis.Normalize([]string{" Z Z ", "X\tZ", "ZY\n"})
	assert.Equal(t, []string{"ZZ", "XZ", "ZY"}, got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, basis.Validate("XZ", 2))
	assert.Error(t, basis.Validate("XZ", 3))
}

func TestNonTrivialSites(t *testing.T) {
	assert.Empty(t, basis.NonTrivialSites("ZZZ"))
	assert.Equal(t, []int{0, 2}, basis.NonTrivialSites("XZY"))
	assert.True(t, basis.IsTrivial("ZZ"))
	assert.False(t, basis.IsTrivial("ZX"))
}

// Every operator in the dictionary must be unitary: U U-dagger = identity.
func TestUnitariesAreUnitary(t *testing.T) {
	for symbol, u := range basis.Unitaries() {
		ut := tensor.Zeros(2, 2, 2)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				ut.Set(u.At(0, j, i), 0, i, j)
				ut.Set(-u.At(1, j, i), 1, i, j)
			}
		}
		prod, err := cplx.MatMul(u, ut)
		require.NoError(t, err)
		assert.True(t, tensor.AlmostEqualSlices([]float64{
			1, 0,
			0, 1,

			0, 0,
			0, 0,
		}, prod.Data(), 1e-12), "U U-dagger != I for %q", symbol)
	}
}

func TestEntry(t *testing.T) {
	u := basis.Unitaries()["Y"]
	e := basis.Entry(u, 0, 1)
	assert.InDelta(t, 0, e.At(0), 1e-12)
	assert.InDelta(t, -1/1.4142135623730951, e.At(1), 1e-9)
}
