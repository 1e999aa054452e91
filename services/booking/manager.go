package booking

import (
	"context"
	"sync"

	"homehelper/utils"

	"go.uber.org/zap"
)

// Manager hands out one Wizard per user and keeps each wizard's draft
// snapshotted to the SnapshotStore so interrupted flows resume after a
// restart. Snapshot failures are logged, never surfaced: the in-memory wizard
// remains authoritative.
type Manager struct {
	gateway   Gateway
	snapshots SnapshotStore
	logger    *zap.Logger

	mu      sync.Mutex
	wizards map[string]*Wizard
}

// NewManager creates a wizard manager. snapshots may be nil, which disables
// persistence.
func NewManager(gateway Gateway, snapshots SnapshotStore) *Manager {
	return &Manager{
		gateway:   gateway,
		snapshots: snapshots,
		logger:    utils.GetLogger(),
		wizards:   make(map[string]*Wizard),
	}
}

// WizardFor returns the user's wizard, hydrating a fresh one from the
// snapshot store on first use.
func (m *Manager) WizardFor(ctx context.Context, userID string) *Wizard {
	m.mu.Lock()
	if w, ok := m.wizards[userID]; ok {
		m.mu.Unlock()
		return w
	}
	w := NewWizard(m.gateway, userID, nil)
	m.wizards[userID] = w
	m.mu.Unlock()

	if m.snapshots != nil {
		snap, err := m.snapshots.Load(ctx, userID)
		if err != nil {
			m.logger.Warn("booking: failed to load wizard snapshot", zap.String("userID", userID), zap.Error(err))
		} else if snap != nil {
			w.restore(*snap)
		}
	}
	return w
}

// Persist snapshots the user's wizard. Call after mutating operations.
func (m *Manager) Persist(ctx context.Context, w *Wizard) {
	if m.snapshots == nil {
		return
	}
	snap := w.snapshot()
	var err error
	if snap.Draft == nil {
		err = m.snapshots.Delete(ctx, w.UserID())
	} else {
		err = m.snapshots.Save(ctx, w.UserID(), snap)
	}
	if err != nil {
		m.logger.Warn("booking: failed to persist wizard snapshot", zap.String("userID", w.UserID()), zap.Error(err))
	}
}
