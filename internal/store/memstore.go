package store

import (
	"sync"

	"clueless/internal/game"
	"clueless/internal/room"
)

// MemoryStore is the in-process session registry. Its lock guards the map only;
// sessions are locked independently by the manager.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

func (m *MemoryStore) Create(id string, build func() (*room.Room, error)) (*room.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; ok {
		return nil, game.ErrSessionExists.Withf("session %s already exists", id)
	}
	r, err := build()
	if err != nil {
		return nil, err
	}
	m.rooms[id] = r
	return r, nil
}

func (m *MemoryStore) Get(id string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

func (m *MemoryStore) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rooms[id]
	delete(m.rooms, id)
	return ok
}

func (m *MemoryStore) List() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
