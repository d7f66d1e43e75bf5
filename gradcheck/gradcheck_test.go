package gradcheck_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fumitoshi0524/psiNet/basis"
	"github.com/fumitoshi0524/psiNet/gradcheck"
	"github.com/fumitoshi0524/psiNet/rbm"
	"github.com/fumitoshi0524/psiNet/rotation"
	"github.com/fumitoshi0524/psiNet/space"
	"github.com/fumitoshi0524/psiNet/tensor"
	"github.com/fumitoshi0524/psiNet/wavefn"
)

const eps = 1e-6

func newWave(t *testing.T, sites, hidden int, seed int64) *wavefn.WaveFunction {
	t.Helper()
	tensor.Seed(seed)
	am := rbm.New(sites, hidden, tensor.CPU)
	ph := rbm.New(sites, hidden, tensor.CPU)
	wf, err := wavefn.New(am, ph, basis.Unitaries(), tensor.CPU)
	require.NoError(t, err)
	return wf
}

func targetFrom(t *testing.T, wf *wavefn.WaveFunction, bases []string, vis *tensor.Tensor) map[string]*tensor.Tensor {
	t.Helper()
	z := space.Partition(wf, vis)
	target := make(map[string]*tensor.Tensor, len(bases))
	for _, label := range bases {
		psiR, err := rotation.RotatePsi(wf, label, wf.Unitaries(), vis)
		require.NoError(t, err)
		psiR.Scale(1 / math.Sqrt(z))
		target[label] = psiR
	}
	return target
}

// fullSpaceSamples measures every configuration in every basis.
func fullSpaceSamples(vis *tensor.Tensor, bases []string) (*tensor.Tensor, []string) {
	shape := vis.Shape()
	var data []float64
	var labels []string
	for _, label := range bases {
		for i := 0; i < shape[0]; i++ {
			data = append(data, vis.Row(i)...)
			labels = append(labels, label)
		}
	}
	return tensor.MustNew(data, shape[0]*len(bases), shape[1]), labels
}

func TestNumericGradNLLMatchesAlgorithmic(t *testing.T) {
	wf := newWave(t, 2, 3, 51)
	vis := space.Generate(2, tensor.CPU)
	samples, sampleBases := fullSpaceSamples(vis, []string{"ZZ", "XZ", "ZY"})

	algAm, algPh, err := gradcheck.AlgorithmicGradNLL(wf, samples, sampleBases, vis)
	require.NoError(t, err)

	numAm, err := gradcheck.NumericGradNLL(wf, samples, sampleBases, wf.AmplitudeRBM().Pars(), vis, eps)
	require.NoError(t, err)
	require.Len(t, numAm, wf.AmplitudeRBM().NumPars())
	for i := range numAm {
		assert.InDelta(t, algAm[i], numAm[i], 1e-5, "amplitude parameter %d", i)
	}

	numPh, err := gradcheck.NumericGradNLL(wf, samples, sampleBases, wf.PhaseRBM().Pars(), vis, eps)
	require.NoError(t, err)
	require.Len(t, numPh, wf.PhaseRBM().NumPars())
	for i := range numPh {
		assert.InDelta(t, algPh[i], numPh[i], 1e-5, "phase parameter %d", i)
	}
}

func TestNumericGradKLMatchesAlgorithmic(t *testing.T) {
	ref := newWave(t, 2, 3, 52)
	wf := newWave(t, 2, 3, 53)
	vis := space.Generate(2, tensor.CPU)
	bases := []string{"ZZ", "XZ", "ZY"}
	target := targetFrom(t, ref, bases, vis)

	algAm, algPh, err := gradcheck.AlgorithmicGradKL(wf, target, vis, bases)
	require.NoError(t, err)

	numAm, err := gradcheck.NumericGradKL(wf, target, wf.AmplitudeRBM().Pars(), vis, bases, eps)
	require.NoError(t, err)
	for i := range numAm {
		assert.InDelta(t, algAm[i], numAm[i], 1e-5, "amplitude parameter %d", i)
	}

	numPh, err := gradcheck.NumericGradKL(wf, target, wf.PhaseRBM().Pars(), vis, bases, eps)
	require.NoError(t, err)
	for i := range numPh {
		assert.InDelta(t, algPh[i], numPh[i], 1e-5, "phase parameter %d", i)
	}
}

// With the model equal to the target, the KL gradient should vanish.
func TestKLGradientVanishesAtTarget(t *testing.T) {
	wf := newWave(t, 2, 3, 54)
	vis := space.Generate(2, tensor.CPU)
	bases := []string{"ZZ", "XZ"}
	target := targetFrom(t, wf, bases, vis)

	algAm, algPh, err := gradcheck.AlgorithmicGradKL(wf, target, vis, bases)
	require.NoError(t, err)
	for i, g := range algAm {
		assert.InDelta(t, 0, g, 1e-9, "amplitude parameter %d", i)
	}
	for i, g := range algPh {
		assert.InDelta(t, 0, g, 1e-9, "phase parameter %d", i)
	}
}

// Probing must leave the parameters where it found them, up to the floating
// round-off of the add/subtract/add restore discipline.
func TestNumericProbeRestoresParameters(t *testing.T) {
	wf := newWave(t, 2, 2, 55)
	vis := space.Generate(2, tensor.CPU)
	samples, sampleBases := fullSpaceSamples(vis, []string{"ZZ"})

	before := append([]float64(nil), wf.AmplitudeRBM().Pars()...)
	_, err := gradcheck.NumericGradNLL(wf, samples, sampleBases, wf.AmplitudeRBM().Pars(), vis, eps)
	require.NoError(t, err)
	after := wf.AmplitudeRBM().Pars()
	for i := range before {
		assert.InDelta(t, before[i], after[i], 1e-12, "parameter %d", i)
	}
}

func TestNumericGradPropagatesMetricErrors(t *testing.T) {
	wf := newWave(t, 2, 2, 56)
	vis := space.Generate(2, tensor.CPU)
	samples := tensor.MustNew([]float64{0, 0}, 1, 2)

	_, err := gradcheck.NumericGradNLL(wf, samples, []string{"QQ"}, wf.AmplitudeRBM().Pars(), vis, eps)
	assert.Error(t, err)
}
