package tensor

import (
	"errors"
)

// Tensor is a dense, row-major float64 array. All data is host-resident;
// placement is tracked separately via Device.
type Tensor struct {
	data    []float64
	shape   []int
	strides []int
}

func New(data []float64, shape ...int) (*Tensor, error) {
	if len(shape) == 0 {
		return nil, errors.New("shape is required")
	}
	total := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, errors.New("invalid shape")
		}
		total *= dim
	}
	if total != len(data) {
		return nil, errors.New("data and shape mismatch")
	}
	t := &Tensor{
		data:    append([]float64(nil), data...),
		shape:   append([]int(nil), shape...),
		strides: makeStrides(shape),
	}
	return t, nil
}

func MustNew(data []float64, shape ...int) *Tensor {
	t, err := New(data, shape...)
	if err != nil {
		panic(err)
	}
	return t
}

func Zeros(shape ...int) *Tensor {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	return MustNew(make([]float64, size), shape...)
}

func Ones(shape ...int) *Tensor {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	data := make([]float64, size)
	for i := range data {
		data[i] = 1
	}
	return MustNew(data, shape...)
}

func Full(value float64, shape ...int) *Tensor {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	data := make([]float64, size)
	for i := range data {
		data[i] = value
	}
	return MustNew(data, shape...)
}

func (t *Tensor) Clone() *Tensor {
	if t == nil {
		return nil
	}
	return &Tensor{
		data:    append([]float64(nil), t.data...),
		shape:   append([]int(nil), t.shape...),
		strides: append([]int(nil), t.strides...),
	}
}

func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

func (t *Tensor) Numel() int {
	return len(t.data)
}

// Data returns a copy of the underlying values.
func (t *Tensor) Data() []float64 {
	return append([]float64(nil), t.data...)
}

// Values returns the tensor's backing slice. Mutations through the returned
// slice are visible to the tensor; callers that need isolation use Data.
func (t *Tensor) Values() []float64 {
	return t.data
}

// SetData overwrites the tensor's underlying values. The provided slice must match Numel().
func (t *Tensor) SetData(values []float64) error {
	if len(values) != len(t.data) {
		return errors.New("SetData expects matching element count")
	}
	copy(t.data, values)
	return nil
}

func (t *Tensor) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(errors.New("index rank mismatch"))
	}
	off := 0
	for i, j := range idx {
		if j < 0 || j >= t.shape[i] {
			panic(errors.New("index out of range"))
		}
		off += j * t.strides[i]
	}
	return off
}

func (t *Tensor) At(idx ...int) float64 {
	return t.data[t.offset(idx)]
}

func (t *Tensor) Set(value float64, idx ...int) {
	t.data[t.offset(idx)] = value
}

// Row returns a copy of row i of a rank-2 tensor.
func (t *Tensor) Row(i int) []float64 {
	if len(t.shape) != 2 {
		panic(errors.New("Row expects a rank 2 tensor"))
	}
	if i < 0 || i >= t.shape[0] {
		panic(errors.New("row index out of range"))
	}
	cols := t.shape[1]
	return append([]float64(nil), t.data[i*cols:(i+1)*cols]...)
}

// Scale multiplies every element in place.
func (t *Tensor) Scale(value float64) {
	for i := range t.data {
		t.data[i] *= value
	}
}

func makeStrides(shape []int) []int {
	if len(shape) == 0 {
		return nil
	}
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}
