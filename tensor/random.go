package tensor

import (
	"math/rand"
	"sync"
	"time"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))
var rngLock sync.Mutex

// Seed reseeds the package generator; tests use it for reproducible models.
func Seed(seed int64) {
	rngLock.Lock()
	rng = rand.New(rand.NewSource(seed))
	rngLock.Unlock()
}

func Randn(shape ...int) *Tensor {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	data := make([]float64, size)
	rngLock.Lock()
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	rngLock.Unlock()
	return MustNew(data, shape...)
}
