// Package metrics evaluates distribution-level objectives of a wavefunction
// model by exact enumeration: normalized probabilities, negative
// log-likelihood over measured samples, and KL divergence against a target
// wavefunction recorded per basis. All of it assumes a fully enumerable
// state space; none of it is usable at scale, by design of the harness.
package metrics

import (
	"fmt"
	"math"

	"github.com/fumitoshi0524/psiNet/basis"
	"github.com/fumitoshi0524/psiNet/cplx"
	"github.com/fumitoshi0524/psiNet/rotation"
	"github.com/fumitoshi0524/psiNet/space"
	"github.com/fumitoshi0524/psiNet/tensor"
)

// WaveModel is the model surface the metrics need.
type WaveModel interface {
	rotation.PsiModel
	Amplitude(v []float64) float64
}

// Probability returns |psi(v)|^2 / Z. Z must come from a partition
// evaluation at the model's current parameters; it is never cached here.
func Probability(m WaveModel, v []float64, z float64) float64 {
	amp := m.Amplitude(v)
	return amp * amp / z
}

// NLL computes the negative log-likelihood of a batch of measured samples,
// each taken in its own basis. Samples measured fully in the computational
// basis contribute -log p(v); samples in a rotated basis contribute
// -(log |U psi|^2 - log Z) at the sample's index in the enumerated space.
func NLL(m WaveModel, samples *tensor.Tensor, sampleBases []string, z float64, unitaries map[string]*tensor.Tensor, vis *tensor.Tensor) (float64, error) {
	shape := samples.Shape()
	if len(shape) != 2 || shape[1] != m.NumVisible() {
		return 0, fmt.Errorf("samples must have shape [batch, %d], got %v", m.NumVisible(), shape)
	}
	batch := shape[0]
	if len(sampleBases) != batch {
		return 0, fmt.Errorf("%d samples but %d basis labels", batch, len(sampleBases))
	}
	nll := 0.0
	for i := 0; i < batch; i++ {
		label := sampleBases[i]
		if err := basis.Validate(label, m.NumVisible()); err != nil {
			return 0, err
		}
		v := samples.Row(i)
		if basis.IsTrivial(label) {
			nll -= math.Log(Probability(m, v, z)) / float64(batch)
			continue
		}
		psiR, err := rotation.RotatePsi(m, label, unitaries, vis)
		if err != nil {
			return 0, err
		}
		ind := space.Index(v)
		nll -= (math.Log(cplx.NormAt(psiR, ind)) - math.Log(z)) / float64(batch)
	}
	return nll, nil
}

// KL computes the KL divergence of the model distribution from a target
// wavefunction dictionary, averaged over the given bases. The first label
// is the reference (computational) basis and is read off the model's
// probabilities directly; every other basis goes through a rotation of the
// model wavefunction. Configurations with zero target probability skip
// their p*log(p) term (0*log 0 = 0 by convention).
func KL(m WaveModel, target map[string]*tensor.Tensor, vis *tensor.Tensor, z float64, unitaries map[string]*tensor.Tensor, bases []string) (float64, error) {
	if len(bases) == 0 {
		return 0, fmt.Errorf("no bases given")
	}
	nb := float64(len(bases))
	rows := vis.Shape()[0]

	ref, ok := target[bases[0]]
	if !ok {
		return 0, fmt.Errorf("no target amplitudes for basis %q", bases[0])
	}
	kl := 0.0
	for i := 0; i < rows; i++ {
		p := cplx.NormAt(ref, i)
		if p > 0 {
			kl += p * math.Log(p) / nb
		}
		kl -= p * math.Log(Probability(m, vis.Row(i), z)) / nb
	}

	for b := 1; b < len(bases); b++ {
		tb, ok := target[bases[b]]
		if !ok {
			return 0, fmt.Errorf("no target amplitudes for basis %q", bases[b])
		}
		psiR, err := rotation.RotatePsi(m, bases[b], unitaries, vis)
		if err != nil {
			return 0, err
		}
		for i := 0; i < rows; i++ {
			p := cplx.NormAt(tb, i)
			if p > 0 {
				kl += p * math.Log(p) / nb
			}
			kl -= p * math.Log(cplx.NormAt(psiR, i)) / nb
			kl += p * math.Log(z) / nb
		}
	}
	return kl, nil
}
