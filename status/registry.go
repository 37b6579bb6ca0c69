package status

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Float is an atomic float64 stored as bits; zero value reads 0.0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Set(v float64) { f.bits.Store(math.Float64bits(v)) }
func (f *Float) Get() float64  { return math.Float64frombits(f.bits.Load()) }

// Registry holds named counters and gauges
// Lookups lock; callers cache the returned pointers and write to them lock-free each tick
type Registry struct {
	mu     sync.RWMutex
	ints   map[string]*atomic.Int64
	floats map[string]*Float
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   make(map[string]*atomic.Int64),
		floats: make(map[string]*Float),
	}
}

// Int returns the integer metric for key, creating it on first use
func (r *Registry) Int(key string) *atomic.Int64 {
	return getOrCreate(&r.mu, r.ints, key)
}

// Float returns the float metric for key, creating it on first use
func (r *Registry) Float(key string) *Float {
	return getOrCreate(&r.mu, r.floats, key)
}

func getOrCreate[T any](mu *sync.RWMutex, m map[string]*T, key string) *T {
	mu.RLock()
	ptr, ok := m[key]
	mu.RUnlock()
	if ok {
		return ptr
	}

	mu.Lock()
	defer mu.Unlock()
	// Double-check after acquiring write lock
	if ptr, ok := m[key]; ok {
		return ptr
	}
	ptr = new(T)
	m[key] = ptr
	return ptr
}

// Line formats every metric as "key=value" in sorted key order
func (r *Registry) Line() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := make([]string, 0, len(r.ints)+len(r.floats))
	for k, v := range r.ints {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	}
	for k, v := range r.floats {
		parts = append(parts, fmt.Sprintf("%s=%.3f", k, v.Get()))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
