// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package preferences

import (
	"sync"

	"github.com/wneessen/feelslike/internal/vartype"
)

// Memory is a Store kept in memory. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]*vartype.VarString
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]*vartype.VarString)}
}

// NewMemoryFrom returns a Memory store seeded with the values of store for all known keys.
func NewMemoryFrom(store Store) *Memory {
	mem := NewMemory()
	mem.Set(KeyTemperatureType, store.GetString(KeyTemperatureType, DefaultTemperatureType))
	mem.Set(KeyTemperatureUnits, store.GetString(KeyTemperatureUnits, DefaultTemperatureUnits))
	return mem
}

// GetString satisfies the Store interface.
func (m *Memory) GetString(key, def string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.values[key]
	if !ok {
		return def
	}
	return val.ValueOr(def)
}

// Set stores val for key.
func (m *Memory) Set(key, val string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		v = new(vartype.VarString)
		m.values[key] = v
	}
	v.Set(val)
}

// Reset removes the value for key so lookups fall back to their default.
func (m *Memory) Reset(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		v.Reset()
	}
}

// Update atomically replaces the value for key with the result of fn. fn receives the
// current value or def if unset.
func (m *Memory) Update(key, def string, fn func(string) string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		v = new(vartype.VarString)
		m.values[key] = v
	}
	v.Set(fn(v.ValueOr(def)))
}
