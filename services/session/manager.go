package session

import (
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Manager hands out one Store per client session ID, so every connected
// device keeps its own credential slots and recovery lifecycle. Stores are
// created lazily and share a single identity gateway.
type Manager struct {
	gateway IdentityGateway
	creds   func(sessionID string) CredentialStore

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a Manager whose stores persist credentials in the given
// Redis client.
func NewManager(gateway IdentityGateway, client *redis.Client, ttl time.Duration) *Manager {
	return NewManagerWithStores(gateway, func(sessionID string) CredentialStore {
		return NewRedisCredentialStore(client, sessionID, ttl)
	})
}

// NewManagerWithStores creates a Manager with a custom credential store per
// session ID.
func NewManagerWithStores(gateway IdentityGateway, creds func(sessionID string) CredentialStore) *Manager {
	return &Manager{
		gateway: gateway,
		creds:   creds,
		stores:  make(map[string]*Store),
	}
}

// StoreFor returns the session store for a client session ID, creating it on
// first use.
func (m *Manager) StoreFor(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store := New(m.gateway, m.creds(sessionID))
	m.stores[sessionID] = store
	return store
}

// Drop forgets the in-memory store for a session ID. Persisted credentials
// are untouched; the next StoreFor recovers from them.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
