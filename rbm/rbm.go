// Package rbm implements the binary restricted Boltzmann machine that backs
// each half of a wavefunction: E(v) = -b.v - sum_j softplus(c_j + W_j.v),
// with unnormalized probability e^{-E(v)}.
package rbm

import (
	"math"

	"github.com/fumitoshi0524/psiNet/tensor"
)

// BinaryRBM holds its weights, visible bias and hidden bias in one flat
// parameter tensor so callers can perturb individual parameters in place:
// first the h*v weight block in row-major order, then the visible bias,
// then the hidden bias.
type BinaryRBM struct {
	numVisible int
	numHidden  int
	pars       *tensor.Tensor
	device     tensor.Device
}

func New(numVisible, numHidden int, dev tensor.Device) *BinaryRBM {
	pars := tensor.Randn(numHidden*numVisible + numVisible + numHidden)
	pars.Scale(1.0 / math.Sqrt(float64(numVisible)))
	return &BinaryRBM{
		numVisible: numVisible,
		numHidden:  numHidden,
		pars:       pars,
		device:     dev,
	}
}

func (r *BinaryRBM) NumVisible() int { return r.numVisible }

func (r *BinaryRBM) NumHidden() int { return r.numHidden }

func (r *BinaryRBM) Device() tensor.Device { return r.device }

// NumPars is the total parameter count: h*v weights + v + h biases.
func (r *BinaryRBM) NumPars() int {
	return r.numHidden*r.numVisible + r.numVisible + r.numHidden
}

// Pars exposes the live flat parameter slice. Mutations through it change
// the model; finite-difference probes rely on that.
func (r *BinaryRBM) Pars() []float64 {
	return r.pars.Values()
}

// Parameters returns the flat parameter tensor.
func (r *BinaryRBM) Parameters() []*tensor.Tensor {
	return []*tensor.Tensor{r.pars}
}

func (r *BinaryRBM) weightOffset() int  { return 0 }
func (r *BinaryRBM) visibleOffset() int { return r.numHidden * r.numVisible }
func (r *BinaryRBM) hiddenOffset() int  { return r.numHidden*r.numVisible + r.numVisible }

// hiddenActivation computes c_j + W_j.v for hidden unit j.
func (r *BinaryRBM) hiddenActivation(j int, v []float64) float64 {
	pars := r.pars.Values()
	act := pars[r.hiddenOffset()+j]
	row := r.weightOffset() + j*r.numVisible
	for k := 0; k < r.numVisible; k++ {
		act += pars[row+k] * v[k]
	}
	return act
}

// EffectiveEnergy evaluates E(v) for a single configuration.
func (r *BinaryRBM) EffectiveEnergy(v []float64) float64 {
	pars := r.pars.Values()
	e := 0.0
	for k := 0; k < r.numVisible; k++ {
		e -= pars[r.visibleOffset()+k] * v[k]
	}
	for j := 0; j < r.numHidden; j++ {
		e -= softplus(r.hiddenActivation(j, v))
	}
	return e
}

// EffectiveEnergyGradient returns dE/dtheta at v, flattened in the same
// order as Pars.
func (r *BinaryRBM) EffectiveEnergyGradient(v []float64) []float64 {
	grad := make([]float64, r.NumPars())
	for j := 0; j < r.numHidden; j++ {
		sig := sigmoid(r.hiddenActivation(j, v))
		row := r.weightOffset() + j*r.numVisible
		for k := 0; k < r.numVisible; k++ {
			grad[row+k] = -sig * v[k]
		}
		grad[r.hiddenOffset()+j] = -sig
	}
	for k := 0; k < r.numVisible; k++ {
		grad[r.visibleOffset()+k] = -v[k]
	}
	return grad
}

// PartitionFunction sums e^{-E(v)} over every row of the visible space.
func (r *BinaryRBM) PartitionFunction(vis *tensor.Tensor) float64 {
	rows := vis.Shape()[0]
	z := 0.0
	for i := 0; i < rows; i++ {
		z += math.Exp(-r.EffectiveEnergy(vis.Row(i)))
	}
	return z
}

func softplus(x float64) float64 {
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
