package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homehelper/models"

	"github.com/go-redis/redis/v8"
)

const wizardSnapshotPrefix = "wizardDraft:"

// Snapshot captures the resumable part of a wizard: the draft and the step
// cursor. The booking list is not snapshotted; it reloads from the backend.
type Snapshot struct {
	Draft *models.BookingDraft `json:"draft,omitempty"`
	Step  int                  `json:"step"`
}

// SnapshotStore persists wizard snapshots between requests so an interrupted
// flow survives a process restart.
type SnapshotStore interface {
	Save(ctx context.Context, userID string, snap Snapshot) error
	// Load returns nil when no snapshot exists or the stored one is corrupt.
	Load(ctx context.Context, userID string) (*Snapshot, error)
	Delete(ctx context.Context, userID string) error
}

// RedisSnapshotStore stores wizard snapshots as JSON with a TTL.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore creates a SnapshotStore backed by the given client.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

// Save writes the snapshot, refreshing its TTL.
func (s *RedisSnapshotStore) Save(ctx context.Context, userID string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard snapshot: %w", err)
	}
	if err := s.client.Set(ctx, wizardSnapshotPrefix+userID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save wizard snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot. Absent or corrupt snapshots read as nil.
func (s *RedisSnapshotStore) Load(ctx context.Context, userID string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, wizardSnapshotPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt snapshot reads as "no draft".
		return nil, nil
	}
	return &snap, nil
}

// Delete removes the snapshot.
func (s *RedisSnapshotStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, wizardSnapshotPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard snapshot: %w", err)
	}
	return nil
}

// restore applies a snapshot to a fresh wizard.
func (w *Wizard) restore(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = snap.Draft
	if snap.Step >= StepService && snap.Step <= StepPayment {
		w.step = snap.Step
	}
}

// snapshot captures the wizard's resumable state.
func (w *Wizard) snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := Snapshot{Step: w.step}
	if w.draft != nil {
		draft := *w.draft
		snap.Draft = &draft
	}
	return snap
}
