package session

import (
	"context"
	"sync"
)

// MemoryBackend keeps client storage in process memory. It is lost on
// restart and is not shared between replicas.
type MemoryBackend struct {
	mu      sync.RWMutex
	clients map[string]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{clients: make(map[string]map[string]string)}
}

func (m *MemoryBackend) Client(clientID string) Store {
	return &memoryStore{backend: m, clientID: clientID}
}

type memoryStore struct {
	backend  *MemoryBackend
	clientID string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()

	v, ok := s.backend.clients[s.clientID][key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	kv, ok := s.backend.clients[s.clientID]
	if !ok {
		kv = make(map[string]string)
		s.backend.clients[s.clientID] = kv
	}
	kv[key] = value
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	kv, ok := s.backend.clients[s.clientID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(kv, k)
	}
	if len(kv) == 0 {
		delete(s.backend.clients, s.clientID)
	}
	return nil
}
