package main

import (
	"flag"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fumitoshi0524/psiNet/basis"
	"github.com/fumitoshi0524/psiNet/gradcheck"
	"github.com/fumitoshi0524/psiNet/rbm"
	"github.com/fumitoshi0524/psiNet/rotation"
	"github.com/fumitoshi0524/psiNet/space"
	"github.com/fumitoshi0524/psiNet/tensor"
	"github.com/fumitoshi0524/psiNet/wavefn"
)

func main() {
	sites := flag.Int("sites", 2, "number of visible sites")
	hidden := flag.Int("hidden", 3, "hidden units per RBM")
	eps := flag.Float64("eps", 1e-6, "finite-difference step")
	tol := flag.Float64("tol", 1e-5, "max allowed |numeric - algorithmic|")
	seed := flag.Int64("seed", 1234, "model init seed")
	basesFlag := flag.String("bases", "ZZ,XZ", "comma-separated basis labels; first is the reference")
	targetPath := flag.String("target", "", "msgpack target fixture; synthesized from a reference model when empty")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	bases := basis.Normalize(strings.Split(*basesFlag, ","))
	unitaries := basis.Unitaries()
	vis := space.Generate(*sites, tensor.CPU)

	tensor.Seed(*seed + 1)
	ref := mustWave(*sites, *hidden, unitaries, log)

	tensor.Seed(*seed)
	wf := mustWave(*sites, *hidden, unitaries, log)

	var target map[string]*tensor.Tensor
	if *targetPath != "" {
		loaded, psi, err := basis.LoadTargetFile(*targetPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *targetPath).Msg("load target fixture")
		}
		bases = loaded
		target = psi
		log.Info().Strs("bases", bases).Msg("target loaded from fixture")
	} else {
		var err error
		target, err = synthesizeTarget(ref, bases, unitaries, vis)
		if err != nil {
			log.Fatal().Err(err).Msg("synthesize target")
		}
		log.Info().Strs("bases", bases).Msg("target synthesized from reference model")
	}

	// NLL batch: the full space measured in every basis.
	rows := vis.Shape()[0]
	var sampleData []float64
	var sampleBases []string
	for _, label := range bases {
		for i := 0; i < rows; i++ {
			sampleData = append(sampleData, vis.Row(i)...)
		}
		for i := 0; i < rows; i++ {
			sampleBases = append(sampleBases, label)
		}
	}
	samples := tensor.MustNew(sampleData, rows*len(bases), *sites)

	worst := 0.0

	algAm, algPh, err := gradcheck.AlgorithmicGradNLL(wf, samples, sampleBases, vis)
	if err != nil {
		log.Fatal().Err(err).Msg("algorithmic NLL gradient")
	}
	numAm, err := gradcheck.NumericGradNLL(wf, samples, sampleBases, wf.AmplitudeRBM().Pars(), vis, *eps)
	if err != nil {
		log.Fatal().Err(err).Msg("numeric NLL gradient (amplitude)")
	}
	numPh, err := gradcheck.NumericGradNLL(wf, samples, sampleBases, wf.PhaseRBM().Pars(), vis, *eps)
	if err != nil {
		log.Fatal().Err(err).Msg("numeric NLL gradient (phase)")
	}
	worst = math.Max(worst, report(log, "nll/amplitude", numAm, algAm))
	worst = math.Max(worst, report(log, "nll/phase", numPh, algPh))

	algAm, algPh, err = gradcheck.AlgorithmicGradKL(wf, target, vis, bases)
	if err != nil {
		log.Fatal().Err(err).Msg("algorithmic KL gradient")
	}
	numAm, err = gradcheck.NumericGradKL(wf, target, wf.AmplitudeRBM().Pars(), vis, bases, *eps)
	if err != nil {
		log.Fatal().Err(err).Msg("numeric KL gradient (amplitude)")
	}
	numPh, err = gradcheck.NumericGradKL(wf, target, wf.PhaseRBM().Pars(), vis, bases, *eps)
	if err != nil {
		log.Fatal().Err(err).Msg("numeric KL gradient (phase)")
	}
	worst = math.Max(worst, report(log, "kl/amplitude", numAm, algAm))
	worst = math.Max(worst, report(log, "kl/phase", numPh, algPh))

	if worst > *tol {
		log.Error().Float64("worst", worst).Float64("tol", *tol).Msg("gradient check failed")
		os.Exit(1)
	}
	log.Info().Float64("worst", worst).Float64("tol", *tol).Msg("gradient check passed")
}

func mustWave(sites, hidden int, unitaries map[string]*tensor.Tensor, log zerolog.Logger) *wavefn.WaveFunction {
	am := rbm.New(sites, hidden, tensor.CPU)
	ph := rbm.New(sites, hidden, tensor.CPU)
	wf, err := wavefn.New(am, ph, unitaries, tensor.CPU)
	if err != nil {
		log.Fatal().Err(err).Msg("build wavefunction")
	}
	return wf
}

// synthesizeTarget rotates a reference model's normalized wavefunction into
// every requested basis.
func synthesizeTarget(ref *wavefn.WaveFunction, bases []string, unitaries map[string]*tensor.Tensor, vis *tensor.Tensor) (map[string]*tensor.Tensor, error) {
	z := space.Partition(ref, vis)
	target := make(map[string]*tensor.Tensor, len(bases))
	for _, label := range bases {
		psiR, err := rotation.RotatePsi(ref, label, unitaries, vis)
		if err != nil {
			return nil, err
		}
		psiR.Scale(1 / math.Sqrt(z))
		target[label] = psiR
	}
	return target, nil
}

func report(log zerolog.Logger, name string, numeric, algorithmic []float64) float64 {
	worst := 0.0
	for i := range numeric {
		worst = math.Max(worst, math.Abs(numeric[i]-algorithmic[i]))
	}
	log.Info().Str("gradient", name).Int("pars", len(numeric)).Float64("max_abs_diff", worst).Msg("compared")
	return worst
}
