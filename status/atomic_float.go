package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge for speed, RPM and the other continuous readouts
// The zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) { f.bits.Store(math.Float64bits(val)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.bits.Load()) }

// Max keeps the larger of the stored value and val and returns it
// NaN never replaces a stored value
func (f *AtomicFloat) Max(val float64) float64 {
	return f.update(func(cur float64) (float64, bool) {
		return val, val > cur
	})
}

// update retries a compare-and-swap until next reports no change or the swap lands
func (f *AtomicFloat) update(next func(cur float64) (float64, bool)) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		val, change := next(cur)
		if !change {
			return cur
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(val)) {
			return val
		}
	}
}
