// Package wavefn models a complex wavefunction as a pair of binary RBMs:
// one for the amplitude, one for the phase. psi(v) = e^{-E_am(v)/2} *
// e^{i phi(v)} with phi(v) = -E_ph(v)/2.
package wavefn

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/fumitoshi0524/psiNet/basis"
	"github.com/fumitoshi0524/psiNet/rbm"
	"github.com/fumitoshi0524/psiNet/space"
	"github.com/fumitoshi0524/psiNet/tensor"
)

type WaveFunction struct {
	am        *rbm.BinaryRBM
	ph        *rbm.BinaryRBM
	unitaries map[string]*tensor.Tensor
	device    tensor.Device
}

func New(am, ph *rbm.BinaryRBM, unitaries map[string]*tensor.Tensor, dev tensor.Device) (*WaveFunction, error) {
	if am == nil || ph == nil {
		return nil, errors.New("wavefn requires amplitude and phase models")
	}
	if am.NumVisible() != ph.NumVisible() {
		return nil, fmt.Errorf("visible size mismatch: amplitude %d, phase %d", am.NumVisible(), ph.NumVisible())
	}
	return &WaveFunction{am: am, ph: ph, unitaries: unitaries, device: dev}, nil
}

func (w *WaveFunction) NumVisible() int { return w.am.NumVisible() }

func (w *WaveFunction) Device() tensor.Device { return w.device }

func (w *WaveFunction) AmplitudeRBM() *rbm.BinaryRBM { return w.am }

func (w *WaveFunction) PhaseRBM() *rbm.BinaryRBM { return w.ph }

func (w *WaveFunction) Unitaries() map[string]*tensor.Tensor { return w.unitaries }

// Amplitude returns |psi(v)| = e^{-E_am(v)/2}.
func (w *WaveFunction) Amplitude(v []float64) float64 {
	return math.Exp(-w.am.EffectiveEnergy(v) / 2)
}

// Phase returns the argument of psi(v).
func (w *WaveFunction) Phase(v []float64) float64 {
	return -w.ph.EffectiveEnergy(v) / 2
}

// Psi returns the complex amplitude at v as a [2] tensor.
func (w *WaveFunction) Psi(v []float64) *tensor.Tensor {
	amp := w.Amplitude(v)
	phase := w.Phase(v)
	return tensor.MustNew([]float64{amp * math.Cos(phase), amp * math.Sin(phase)}, 2)
}

// UnnormalizedProbability returns |psi(v)|^2 = e^{-E_am(v)}.
func (w *WaveFunction) UnnormalizedProbability(v []float64) float64 {
	return math.Exp(-w.am.EffectiveEnergy(v))
}

// Gradient computes the analytic gradient pair of -log |U psi(v)|^2 with
// respect to the amplitude and phase parameters, for a sample v measured in
// the given basis. In a fully computational basis this is the amplitude
// energy gradient and a zero phase vector; in a rotated basis it is the
// contraction over the rotated sites' sub-space.
func (w *WaveFunction) Gradient(label string, v []float64) ([]float64, []float64, error) {
	n := w.NumVisible()
	if err := basis.Validate(label, n); err != nil {
		return nil, nil, err
	}
	sites := basis.NonTrivialSites(label)
	if len(sites) == 0 {
		return w.am.EffectiveEnergyGradient(v), make([]float64, w.ph.NumPars()), nil
	}

	amRe := make([]float64, w.am.NumPars())
	amIm := make([]float64, w.am.NumPars())
	phRe := make([]float64, w.ph.NumPars())
	phIm := make([]float64, w.ph.NumPars())
	upsiRe, upsiIm := 0.0, 0.0

	sub := space.Generate(len(sites), w.device)
	vp := append([]float64(nil), v...)
	for xp := 0; xp < sub.Shape()[0]; xp++ {
		row := sub.Row(xp)
		for c, j := range sites {
			vp[j] = row[c]
		}
		uRe, uIm := 1.0, 0.0
		for _, j := range sites {
			u, ok := w.unitaries[string(label[j])]
			if !ok {
				return nil, nil, fmt.Errorf("no unitary for basis symbol %q", string(label[j]))
			}
			re := u.At(0, int(v[j]), int(vp[j]))
			im := u.At(1, int(v[j]), int(vp[j]))
			uRe, uIm = uRe*re-uIm*im, uRe*im+uIm*re
		}
		psi := w.Psi(vp)
		zRe := uRe*psi.At(0) - uIm*psi.At(1)
		zIm := uRe*psi.At(1) + uIm*psi.At(0)
		upsiRe += zRe
		upsiIm += zIm

		oAm := w.am.EffectiveEnergyGradient(vp)
		floats.AddScaled(amRe, zRe, oAm)
		floats.AddScaled(amIm, zIm, oAm)
		oPh := w.ph.EffectiveEnergyGradient(vp)
		floats.AddScaled(phRe, zRe, oPh)
		floats.AddScaled(phIm, zIm, oPh)
	}

	den := upsiRe*upsiRe + upsiIm*upsiIm
	gradAm := make([]float64, w.am.NumPars())
	for i := range gradAm {
		// Re[(sum U psi O_am) / U psi]
		gradAm[i] = (amRe[i]*upsiRe + amIm[i]*upsiIm) / den
	}
	gradPh := make([]float64, w.ph.NumPars())
	for i := range gradPh {
		// -Im[(sum U psi O_ph) / U psi]
		gradPh[i] = -(phIm[i]*upsiRe - phRe[i]*upsiIm) / den
	}
	return gradAm, gradPh, nil
}
