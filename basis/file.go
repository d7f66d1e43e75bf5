package basis

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/fumitoshi0524/psiNet/tensor"
)

// targetDocument is the on-disk fixture layout: basis labels followed by the
// flat (real, imaginary) block that LoadTargetPsi splits.
type targetDocument struct {
	Bases []string     `msgpack:"bases"`
	Psi   [][2]float64 `msgpack:"psi"`
}

// SaveTargetFile writes a target wavefunction dictionary as a msgpack
// fixture. Vectors are written in the order of the bases slice.
func SaveTargetFile(path string, bases []string, psi map[string]*tensor.Tensor) error {
	doc := targetDocument{Bases: bases}
	for _, label := range bases {
		vec, ok := psi[label]
		if !ok {
			return fmt.Errorf("no target amplitudes for basis %q", label)
		}
		shape := vec.Shape()
		if len(shape) != 2 || shape[0] != 2 {
			return fmt.Errorf("target for basis %q must have shape [2, D], got %v", label, shape)
		}
		for i := 0; i < shape[1]; i++ {
			doc.Psi = append(doc.Psi, [2]float64{vec.At(0, i), vec.At(1, i)})
		}
	}
	blob, err := msgpack.Marshal(&doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

// LoadTargetFile reads a msgpack fixture back into normalized labels and a
// per-basis amplitude dictionary.
func LoadTargetFile(path string) ([]string, map[string]*tensor.Tensor, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var doc targetDocument
	if err := msgpack.Unmarshal(blob, &doc); err != nil {
		return nil, nil, err
	}
	labels := Normalize(doc.Bases)
	flat := make([]float64, 0, 2*len(doc.Psi))
	for _, row := range doc.Psi {
		flat = append(flat, row[0], row[1])
	}
	data, err := tensor.New(flat, len(doc.Psi), 2)
	if err != nil {
		return nil, nil, err
	}
	psi, err := LoadTargetPsi(labels, data)
	if err != nil {
		return nil, nil, err
	}
	return labels, psi, nil
}
