// Package gradcheck produces central finite-difference gradients of the NLL
// and KL objectives, and the algorithmic gradients they are validated
// against. The numeric routines perturb live model parameters in place;
// each probe recomputes the partition constant before evaluating the
// objective. Probes are sequential, never concurrent, because they share
// the model's parameter vector.
package gradcheck

import (
	"gonum.org/v1/gonum/floats"

	"github.com/fumitoshi0524/psiNet/cplx"
	"github.com/fumitoshi0524/psiNet/metrics"
	"github.com/fumitoshi0524/psiNet/space"
	"github.com/fumitoshi0524/psiNet/tensor"
	"github.com/fumitoshi0524/psiNet/wavefn"
)

// NumericGradNLL differentiates the NLL objective with respect to each
// parameter in pars, which must alias live model parameters (see
// rbm.BinaryRBM.Pars). Each parameter is restored by re-adding eps rather
// than snapshotting, so the original value is recovered only up to floating
// round-off; the residual is far below any useful eps.
func NumericGradNLL(m *wavefn.WaveFunction, samples *tensor.Tensor, sampleBases []string, pars []float64, vis *tensor.Tensor, eps float64) ([]float64, error) {
	grad := make([]float64, len(pars))
	for i := range pars {
		pars[i] += eps
		z := space.Partition(m, vis)
		plus, err := metrics.NLL(m, samples, sampleBases, z, m.Unitaries(), vis)
		if err != nil {
			return nil, err
		}

		pars[i] -= 2 * eps
		z = space.Partition(m, vis)
		minus, err := metrics.NLL(m, samples, sampleBases, z, m.Unitaries(), vis)
		if err != nil {
			return nil, err
		}

		pars[i] += eps
		grad[i] = (plus - minus) / (2 * eps)
	}
	return grad, nil
}

// NumericGradKL differentiates the KL objective with respect to each
// parameter in pars, with the same in-place perturbation discipline as
// NumericGradNLL.
func NumericGradKL(m *wavefn.WaveFunction, target map[string]*tensor.Tensor, pars []float64, vis *tensor.Tensor, bases []string, eps float64) ([]float64, error) {
	grad := make([]float64, len(pars))
	for i := range pars {
		pars[i] += eps
		z := space.Partition(m, vis)
		plus, err := metrics.KL(m, target, vis, z, m.Unitaries(), bases)
		if err != nil {
			return nil, err
		}

		pars[i] -= 2 * eps
		z = space.Partition(m, vis)
		minus, err := metrics.KL(m, target, vis, z, m.Unitaries(), bases)
		if err != nil {
			return nil, err
		}

		pars[i] += eps
		grad[i] = (plus - minus) / (2 * eps)
	}
	return grad, nil
}

// AlgorithmicGradKL computes the closed-form KL gradient pair. The
// reference basis contributes target-weighted minus model-weighted
// amplitude energy gradients; every other basis contributes the model's
// rotated gradient weighted by the target probability, plus the same
// model-weighted partition term.
func AlgorithmicGradKL(m *wavefn.WaveFunction, target map[string]*tensor.Tensor, vis *tensor.Tensor, bases []string) ([]float64, []float64, error) {
	gradAm := make([]float64, m.AmplitudeRBM().NumPars())
	gradPh := make([]float64, m.PhaseRBM().NumPars())
	nb := float64(len(bases))
	rows := vis.Shape()[0]
	z := space.Partition(m, vis)

	ref := target[bases[0]]
	for i := 0; i < rows; i++ {
		v := vis.Row(i)
		o := m.AmplitudeRBM().EffectiveEnergyGradient(v)
		p := cplx.NormAt(ref, i)
		floats.AddScaled(gradAm, p/nb, o)
		floats.AddScaled(gradAm, -metrics.Probability(m, v, z)/nb, o)
	}

	for b := 1; b < len(bases); b++ {
		tb := target[bases[b]]
		for i := 0; i < rows; i++ {
			v := vis.Row(i)
			p := cplx.NormAt(tb, i)
			rotAm, rotPh, err := m.Gradient(bases[b], v)
			if err != nil {
				return nil, nil, err
			}
			floats.AddScaled(gradAm, p/nb, rotAm)
			floats.AddScaled(gradPh, p/nb, rotPh)
			floats.AddScaled(gradAm, -metrics.Probability(m, v, z)/nb, m.AmplitudeRBM().EffectiveEnergyGradient(v))
		}
	}
	return gradAm, gradPh, nil
}

// AlgorithmicGradNLL computes the closed-form NLL gradient pair for a batch
// of samples with per-sample bases: the batch average of the per-sample
// rotated gradients, plus the partition term on the amplitude side.
func AlgorithmicGradNLL(m *wavefn.WaveFunction, samples *tensor.Tensor, sampleBases []string, vis *tensor.Tensor) ([]float64, []float64, error) {
	gradAm := make([]float64, m.AmplitudeRBM().NumPars())
	gradPh := make([]float64, m.PhaseRBM().NumPars())
	batch := samples.Shape()[0]
	for i := 0; i < batch; i++ {
		rotAm, rotPh, err := m.Gradient(sampleBases[i], samples.Row(i))
		if err != nil {
			return nil, nil, err
		}
		floats.AddScaled(gradAm, 1/float64(batch), rotAm)
		floats.AddScaled(gradPh, 1/float64(batch), rotPh)
	}

	z := space.Partition(m, vis)
	rows := vis.Shape()[0]
	for i := 0; i < rows; i++ {
		v := vis.Row(i)
		floats.AddScaled(gradAm, -metrics.Probability(m, v, z), m.AmplitudeRBM().EffectiveEnergyGradient(v))
	}
	return gradAm, gradPh, nil
}
