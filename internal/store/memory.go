package store

import (
	"sync"

	"github.com/jmylchreest/linkhist/internal/model"
)

// Memory is an in-process Storage. Nothing survives the process.
type Memory struct {
	mu      sync.Mutex
	records []model.UrlRecord
	writes  int
}

// NewMemory creates a Memory seeded with a copy of records.
func NewMemory(records ...model.UrlRecord) *Memory {
	m := &Memory{}
	if len(records) > 0 {
		m.records = append([]model.UrlRecord(nil), records...)
	}
	return m
}

// Read returns a copy of the stored records.
func (m *Memory) Read() ([]model.UrlRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.UrlRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Write replaces the stored records with a copy of records.
func (m *Memory) Write(records []model.UrlRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append([]model.UrlRecord(nil), records...)
	m.writes++
	return nil
}

// Clear drops all records.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	m.writes++
	return nil
}

// Writes returns how many times the contents were replaced or cleared.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
