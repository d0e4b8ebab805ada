package credstore

import (
	"sync"

	"github.com/nderose7/shiptrack-app/models"
)

// MemStore is an in-memory Store used in tests.
type MemStore struct {
	mu   sync.Mutex
	cred *models.Credential
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
	return nil
}

func (s *MemStore) Load() (models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return models.Credential{}, ErrNotFound
	}
	return *s.cred, nil
}

func (s *MemStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
