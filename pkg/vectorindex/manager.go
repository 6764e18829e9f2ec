package vectorindex

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Source supplies the records a rebuild indexes: every active knowledge-base
// entry with its precomputed embedding.
type Source interface {
	ActiveRecords(ctx context.Context) ([]Record, error)
}

// Manager owns the current snapshot and its lifecycle. Knowledge-base
// mutations call Invalidate; the next EnsureBuilt performs a full rebuild
// and publishes the new snapshot with a single pointer swap. Readers racing
// a rebuild keep using the previous snapshot until the swap completes.
type Manager struct {
	source  Source
	metric  Metric
	logger  *zap.Logger
	current atomic.Pointer[Snapshot]
	stale   atomic.Bool
	rebuild sync.Mutex
}

func NewManager(source Source, metric Metric, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		source: source,
		metric: metric,
		logger: logger,
	}
	m.stale.Store(true)
	return m
}

// Invalidate marks the current snapshot stale. It returns immediately;
// the rebuild happens on the next EnsureBuilt (or explicit Rebuild).
func (m *Manager) Invalidate() {
	m.stale.Store(true)
}

// Snapshot returns the currently published snapshot, possibly nil when
// nothing has been built yet.
func (m *Manager) Snapshot() *Snapshot {
	return m.current.Load()
}

// EnsureBuilt returns a usable snapshot, rebuilding first when the current
// one is stale or absent. If another goroutine is already rebuilding, the
// previous snapshot is returned instead of blocking; a nil snapshot is a
// valid "no semantic candidates" answer for searches.
func (m *Manager) EnsureBuilt(ctx context.Context) (*Snapshot, error) {
	if !m.stale.Load() {
		return m.current.Load(), nil
	}

	if !m.rebuild.TryLock() {
		return m.current.Load(), nil
	}
	defer m.rebuild.Unlock()

	// Re-check under the lock; a concurrent rebuild may have finished.
	if !m.stale.Load() {
		return m.current.Load(), nil
	}
	return m.doRebuild(ctx)
}

// Rebuild forces a full rebuild from the source, blocking until done.
// Used by administrative calls after bulk knowledge-base changes.
func (m *Manager) Rebuild(ctx context.Context) (*Snapshot, error) {
	m.rebuild.Lock()
	defer m.rebuild.Unlock()
	return m.doRebuild(ctx)
}

func (m *Manager) doRebuild(ctx context.Context) (*Snapshot, error) {
	records, err := m.source.ActiveRecords(ctx)
	if err != nil {
		// Keep serving the previous snapshot; staleness persists so a
		// later query retries the rebuild.
		m.logger.Error("vector index rebuild failed, keeping previous snapshot", zap.Error(err))
		return m.current.Load(), err
	}

	snapshot := Build(records, m.metric)
	if snapshot.Skipped() > 0 {
		m.logger.Warn("records excluded from vector index build",
			zap.Int("skipped", snapshot.Skipped()),
			zap.Int("indexed", snapshot.Len()))
	}

	m.current.Store(snapshot)
	m.stale.Store(false)
	m.logger.Info("vector index rebuilt",
		zap.Int("documents", snapshot.Len()),
		zap.Int("dimension", snapshot.Dimension()))
	return snapshot, nil
}
