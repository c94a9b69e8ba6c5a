// Package memory provides an in-process implementation of
// storage.Storage. Nothing survives a restart: the store lives exactly as
// long as the session that created it.
package memory

import (
	"slices"
	"sync"

	"github.com/aanand-mishra/contacts-api/internal/storage"
	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Memory keeps contacts in insertion order.
//
//	names  []string        order of first insertion
//	index  map[string]int  name -> position in names and records
type Memory struct {
	mu      sync.Mutex
	names   []string
	index   map[string]int
	records []*types.Record
}

var _ storage.Storage = (*Memory)(nil)

func New() *Memory {
	return &Memory{index: make(map[string]int)}
}

func (m *Memory) AddContact(record *types.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := record.Name().String()
	if i, ok := m.index[name]; ok {
		m.records[i] = record.Clone()
		return nil
	}
	m.index[name] = len(m.names)
	m.names = append(m.names, name)
	m.records = append(m.records, record.Clone())
	return nil
}

func (m *Memory) GetContactByName(name string) (*types.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[name]
	if !ok {
		return nil, types.ContactNotFound(name)
	}
	return m.records[i].Clone(), nil
}

func (m *Memory) GetContacts() ([]*types.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*types.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (m *Memory) DeleteContactByName(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[name]
	if !ok {
		return types.ContactNotFound(name)
	}
	m.names = slices.Delete(m.names, i, i+1)
	m.records = slices.Delete(m.records, i, i+1)
	delete(m.index, name)
	// positions after i shifted down by one
	for j := i; j < len(m.names); j++ {
		m.index[m.names[j]] = j
	}
	return nil
}
