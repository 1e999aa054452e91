package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homehelper/models"
	"homehelper/utils"

	"github.com/go-redis/redis/v8"
)

const credentialPrefix = "credentials:"

// RedisCredentialStore persists the two session slots in Redis, namespaced by
// a client session ID so each device keeps its own pair.
type RedisCredentialStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

// NewRedisCredentialStore creates a CredentialStore backed by the given Redis
// client for one client session.
func NewRedisCredentialStore(client *redis.Client, sessionID string, ttl time.Duration) *RedisCredentialStore {
	return &RedisCredentialStore{client: client, sessionID: sessionID, ttl: ttl}
}

func (s *RedisCredentialStore) key(slot string) string {
	return credentialPrefix + s.sessionID + ":" + slot
}

// Save writes both slots together.
func (s *RedisCredentialStore) Save(ctx context.Context, token string, identity models.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(utils.CredentialTokenKey), token, s.ttl)
	pipe.Set(ctx, s.key(utils.CredentialIdentityKey), data, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// LoadToken returns the persisted token, or "" when absent.
func (s *RedisCredentialStore) LoadToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key(utils.CredentialTokenKey)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

// LoadIdentity returns the persisted identity snapshot. Absent or corrupt
// snapshots read as nil without error.
func (s *RedisCredentialStore) LoadIdentity(ctx context.Context) (*models.Identity, error) {
	data, err := s.client.Get(ctx, s.key(utils.CredentialIdentityKey)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load identity snapshot: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		// Corrupt snapshot reads as "no session".
		return nil, nil
	}
	return &identity, nil
}

// Clear removes both slots together.
func (s *RedisCredentialStore) Clear(ctx context.Context) error {
	keys := []string{s.key(utils.CredentialTokenKey), s.key(utils.CredentialIdentityKey)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
