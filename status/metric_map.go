package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap hands out one metric per key. The simulator fetches its pointers
// once at construction and writes through them without touching the map lock
type MetricMap[T any] struct {
	mu      sync.RWMutex
	metrics map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{metrics: map[string]*T{}}
}

func (m *MetricMap[T]) lookup(key string) (*T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.metrics[key]
	return p, ok
}

// Get returns the metric for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if p, ok := m.lookup(key); ok {
		return p
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.metrics[key]
	if !ok {
		p = new(T)
		m.metrics[key] = p
	}
	return p
}

func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

// Keys lists registered keys in sorted order
func (m *MetricMap[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.metrics))
}

// Range visits metrics in key order. fn runs unlocked and may register new keys;
// those are not visited in the same pass
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	for _, k := range m.Keys() {
		if p, ok := m.lookup(k); ok {
			fn(k, p)
		}
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.metrics)
}
