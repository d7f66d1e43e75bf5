package parallel

import (
	"runtime"
	"sync"
)

// Below this many elements the goroutine split costs more than it saves;
// validation-scale tensors hit this path almost always.
const serialCutoff = 256

func For(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < serialCutoff {
		fn(0, n)
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
