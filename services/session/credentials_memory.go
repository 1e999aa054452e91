package session

import (
	"context"
	"encoding/json"
	"sync"

	"homehelper/models"
	"homehelper/utils"
)

// MemoryCredentialStore is an in-memory CredentialStore for tests and
// single-process development runs. It stores the identity slot as raw JSON so
// corruption scenarios can be exercised.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemoryCredentialStore creates an empty in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{slots: make(map[string][]byte)}
}

// Save writes both slots together.
func (s *MemoryCredentialStore) Save(ctx context.Context, token string, identity models.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[utils.CredentialTokenKey] = []byte(token)
	s.slots[utils.CredentialIdentityKey] = data
	return nil
}

// LoadToken returns the persisted token, or "" when absent.
func (s *MemoryCredentialStore) LoadToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.slots[utils.CredentialTokenKey]), nil
}

// LoadIdentity returns the persisted identity snapshot; absent or corrupt
// values read as nil.
func (s *MemoryCredentialStore) LoadIdentity(ctx context.Context) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.slots[utils.CredentialIdentityKey]
	if !ok {
		return nil, nil
	}
	var identity models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, nil
	}
	return &identity, nil
}

// Clear removes both slots together.
func (s *MemoryCredentialStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, utils.CredentialTokenKey)
	delete(s.slots, utils.CredentialIdentityKey)
	return nil
}

// Corrupt overwrites the identity slot with a non-JSON blob. Test helper for
// the recovery path.
func (s *MemoryCredentialStore) Corrupt(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[utils.CredentialTokenKey] = []byte(token)
	s.slots[utils.CredentialIdentityKey] = []byte("{not json")
}
