// Package rotation reconstructs a model wavefunction's amplitudes after a
// measurement-basis change, by contracting the local unitaries of the
// rotated sites over their 2^k sub-space.
package rotation

import (
	"fmt"

	"github.com/fumitoshi0524/psiNet/basis"
	"github.com/fumitoshi0524/psiNet/cplx"
	"github.com/fumitoshi0524/psiNet/space"
	"github.com/fumitoshi0524/psiNet/tensor"
)

// PsiModel is the slice of a wavefunction the contraction needs.
type PsiModel interface {
	NumVisible() int
	Device() tensor.Device
	Psi(v []float64) *tensor.Tensor
}

// RotatePsi evaluates the model's wavefunction in the given basis at every
// configuration of vis. For each output configuration x it sums, over the
// 2^k sub-configurations of the k rotated sites, the product of the local
// unitary entries U[x_j, v_j] with psi(v), where v agrees with x on every
// trivial site. With no rotated sites the sum has a single term with unit
// weight and reduces to psi(x) itself.
//
// The result is a fresh [2, len(vis)] tensor in the order of vis. The cost
// is O(len(vis) * 2^k) psi evaluations.
func RotatePsi(m PsiModel, label string, unitaries map[string]*tensor.Tensor, vis *tensor.Tensor) (*tensor.Tensor, error) {
	n := m.NumVisible()
	if err := basis.Validate(label, n); err != nil {
		return nil, err
	}
	sites := basis.NonTrivialSites(label)
	for _, j := range sites {
		if _, ok := unitaries[string(label[j])]; !ok {
			return nil, fmt.Errorf("no unitary for basis symbol %q", string(label[j]))
		}
	}
	sub := space.Generate(len(sites), m.Device())
	rows := vis.Shape()[0]
	out := tensor.Zeros(2, rows)

	for x := 0; x < rows; x++ {
		xRow := vis.Row(x)
		upsi := cplx.Scalar(0, 0)
		v := append([]float64(nil), xRow...)
		for xp := 0; xp < sub.Shape()[0]; xp++ {
			subRow := sub.Row(xp)
			for c, j := range sites {
				v[j] = subRow[c]
			}
			u := cplx.Scalar(1, 0)
			for _, j := range sites {
				entry := basis.Entry(unitaries[string(label[j])], int(xRow[j]), int(v[j]))
				var err error
				u, err = cplx.ScalarMult(entry, u)
				if err != nil {
					return nil, err
				}
			}
			term, err := cplx.ScalarMult(u, m.Psi(v))
			if err != nil {
				return nil, err
			}
			upsi, err = cplx.Add(upsi, term)
			if err != nil {
				return nil, err
			}
		}
		out.Set(upsi.At(0), 0, x)
		out.Set(upsi.At(1), 1, x)
	}
	return out, nil
}

// RotatePsiFull applies a full-space unitary to an explicit amplitude
// vector: u is [2, D, D], psi is [2, D].
func RotatePsiFull(u, psi *tensor.Tensor) (*tensor.Tensor, error) {
	return cplx.MatMul(u, psi)
}

// FullUnitary assembles the 2^n by 2^n rotation for a complete basis label
// as the Kronecker product of its per-site operators.
func FullUnitary(label string, unitaries map[string]*tensor.Tensor) (*tensor.Tensor, error) {
	out := cplx.Scalar(1, 0)
	out = tensor.MustNew(out.Data(), 2, 1, 1)
	for j := 0; j < len(label); j++ {
		u, ok := unitaries[string(label[j])]
		if !ok {
			return nil, fmt.Errorf("no unitary for basis symbol %q", string(label[j]))
		}
		var err error
		out, err = kron(out, u)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func kron(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	aShape, bShape := a.Shape(), b.Shape()
	ar, ac := aShape[1], aShape[2]
	br, bc := bShape[1], bShape[2]
	out := tensor.Zeros(2, ar*br, ac*bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					aRe, aIm := a.At(0, i, j), a.At(1, i, j)
					bRe, bIm := b.At(0, k, l), b.At(1, k, l)
					out.Set(aRe*bRe-aIm*bIm, 0, i*br+k, j*bc+l)
					out.Set(aRe*bIm+aIm*bRe, 1, i*br+k, j*bc+l)
				}
			}
		}
	}
	return out, nil
}
