package render

import "sync"

// notePool recycles per-note scratch buffers across the notes of a
// render walk. Buffers returned by getBuffer are zeroed.
var notePool = sync.Pool{
	New: func() any {
		s := make([]float64, 0, 1<<14)
		return &s
	},
}

func getBuffer(n int) []float64 {
	b := *notePool.Get().(*[]float64)
	if cap(b) < n {
		return make([]float64, n)
	}
	b = b[:n]
	clear(b)
	return b
}

func putBuffer(b []float64) {
	b = b[:0]
	notePool.Put(&b)
}
