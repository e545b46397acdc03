package collections

import (
	"context"
	"fmt"
	"iter"
	"math"
	"math/bits"

	"github.com/hupe1980/huge"
)

const (
	loadFactor = 0.75
	minMapCap  = 2

	// phi is the 64-bit golden ratio used to scatter keys.
	phi = uint64(0x9E3779B97F4A7C15)
)

func mixHash(k int64) int64 {
	h := uint64(k) * phi
	return int64(h ^ (h >> 32))
}

// LongLongMap is an open-addressing map from int64 to int64 backed by two
// huge arrays. Keys are stored shifted by one so that 0 marks an empty slot;
// the single key whose shifted form is 0 is kept outside the arrays.
type LongLongMap struct {
	keys   *huge.LongArray
	values *huge.LongArray

	mask     int64
	assigned int64
	resizeAt int64

	hasSentinel   bool
	sentinelValue int64

	opts   []huge.Option
	logger *huge.Logger
}

// NewLongLongMap creates a map with room for capacity slots, rounded up to a
// power of two. The map grows once it holds 75% of its slots.
func NewLongLongMap(capacity int64, opts ...huge.Option) (*LongLongMap, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	m := &LongLongMap{
		opts:   opts,
		logger: huge.LoggerOf(opts...),
	}
	keys, values, err := m.allocate(roundCapacity(capacity))
	if err != nil {
		return nil, err
	}
	m.install(keys, values)
	return m, nil
}

func roundCapacity(n int64) int64 {
	if n <= minMapCap {
		return minMapCap
	}
	return int64(1) << bits.Len64(uint64(n-1))
}

func resizeThreshold(capacity int64) int64 {
	return min(capacity-1, int64(math.Ceil(float64(capacity)*loadFactor)))
}

func (m *LongLongMap) allocate(capacity int64) (*huge.LongArray, *huge.LongArray, error) {
	keys, err := huge.NewLongArray(capacity, m.opts...)
	if err != nil {
		return nil, nil, err
	}
	values, err := huge.NewLongArray(capacity, m.opts...)
	if err != nil {
		keys.Release()
		return nil, nil, err
	}
	return keys, values, nil
}

func (m *LongLongMap) install(keys, values *huge.LongArray) {
	m.keys = keys
	m.values = values
	m.mask = keys.Size() - 1
	m.resizeAt = resizeThreshold(keys.Size())
}

// Put associates value with key, replacing any previous value. It fails only
// when growing the map is refused by the memory tracker.
func (m *LongLongMap) Put(key, value int64) error {
	return m.upsert(key, func(int64, bool) int64 { return value })
}

// AddTo adds delta to the value of key, treating absent keys as 0.
func (m *LongLongMap) AddTo(key, delta int64) error {
	return m.upsert(key, func(old int64, _ bool) int64 { return old + delta })
}

func (m *LongLongMap) upsert(key int64, fn func(old int64, found bool) int64) error {
	stored := key + 1
	if stored == 0 {
		m.sentinelValue = fn(m.sentinelValue, m.hasSentinel)
		m.hasSentinel = true
		return nil
	}

	slot, found := m.find(stored)
	if found {
		m.values.Set(slot, fn(m.values.Get(slot), true))
		return nil
	}

	if m.assigned == m.resizeAt {
		if err := m.grow(); err != nil {
			return err
		}
		slot, _ = m.find(stored)
	}

	m.keys.Set(slot, stored)
	m.values.Set(slot, fn(0, false))
	m.assigned++
	return nil
}

// find returns the slot holding stored, or the empty slot where it belongs.
func (m *LongLongMap) find(stored int64) (int64, bool) {
	slot := mixHash(stored) & m.mask
	for {
		existing := m.keys.Get(slot)
		if existing == 0 {
			return slot, false
		}
		if existing == stored {
			return slot, true
		}
		slot = (slot + 1) & m.mask
	}
}

// grow migrates every entry into storage of twice the capacity and drops
// the old arrays afterwards.
func (m *LongLongMap) grow() error {
	from := m.keys.Size()
	to := from << 1

	keys, values, err := m.allocate(to)
	if err != nil {
		return fmt.Errorf("collections: grow map to %d: %w", to, err)
	}

	mask := to - 1
	for base, page := range m.keys.Pages() {
		for i, stored := range page {
			if stored == 0 {
				continue
			}
			slot := mixHash(stored) & mask
			for keys.Get(slot) != 0 {
				slot = (slot + 1) & mask
			}
			keys.Set(slot, stored)
			values.Set(slot, m.values.Get(base+int64(i)))
		}
	}

	oldKeys, oldValues := m.keys, m.values
	m.install(keys, values)
	oldKeys.Release()
	oldValues.Release()

	m.logger.LogResize(context.Background(), "LongLongMap", from, to)
	return nil
}

// GetOrDefault returns the value of key, or def if key is absent.
func (m *LongLongMap) GetOrDefault(key, def int64) int64 {
	stored := key + 1
	if stored == 0 {
		if m.hasSentinel {
			return m.sentinelValue
		}
		return def
	}
	slot, found := m.find(stored)
	if !found {
		return def
	}
	return m.values.Get(slot)
}

// ContainsKey reports whether key is present.
func (m *LongLongMap) ContainsKey(key int64) bool {
	stored := key + 1
	if stored == 0 {
		return m.hasSentinel
	}
	_, found := m.find(stored)
	return found
}

// Size returns the number of keys.
func (m *LongLongMap) Size() int64 {
	if m.hasSentinel {
		return m.assigned + 1
	}
	return m.assigned
}

// IsEmpty reports whether the map holds no keys.
func (m *LongLongMap) IsEmpty() bool { return m.Size() == 0 }

// Capacity returns the number of slots.
func (m *LongLongMap) Capacity() int64 { return m.keys.Size() }

// SizeOf returns the bytes retained by the backing arrays.
func (m *LongLongMap) SizeOf() int64 { return m.keys.SizeOf() + m.values.SizeOf() }

// All iterates the entries in slot order.
func (m *LongLongMap) All() iter.Seq2[int64, int64] {
	return func(yield func(int64, int64) bool) {
		if m.hasSentinel && !yield(-1, m.sentinelValue) {
			return
		}
		for base, page := range m.keys.Pages() {
			for i, stored := range page {
				if stored == 0 {
					continue
				}
				if !yield(stored-1, m.values.Get(base+int64(i))) {
					return
				}
			}
		}
	}
}

// Release drops the backing arrays and returns the bytes they retained.
// The map is empty and unusable afterwards.
func (m *LongLongMap) Release() int64 {
	freed := m.keys.Release() + m.values.Release()
	m.assigned = 0
	m.hasSentinel = false
	return freed
}
