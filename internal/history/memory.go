package history

import (
	"context"
	"sync"

	"github.com/spacesedan/thaisenti/internal/models"
)

// MemoryStore keeps history in process memory; it is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]models.AnalysisResult // oldest first
	limit    int
}

func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]models.AnalysisResult),
		limit:    limit,
	}
}

func (m *MemoryStore) Add(_ context.Context, session string, records ...models.AnalysisResult) error {
	if len(records) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := append(m.sessions[session], records...)
	if m.limit > 0 && len(kept) > m.limit {
		kept = append([]models.AnalysisResult(nil), kept[len(kept)-m.limit:]...)
	}
	m.sessions[session] = kept
	return nil
}

func (m *MemoryStore) List(_ context.Context, session string, limit int) ([]models.AnalysisResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return newestFirst(m.sessions[session], limit), nil
}

func (m *MemoryStore) Clear(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, session)
	return nil
}

// Sessions is the number of sessions with history.
func (m *MemoryStore) Sessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
