package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    int
	expiresAt time.Time
}

// MemoryStore mantém as sessões num mapa com expiração. Um janitor remove
// entradas vencidas periodicamente; Get também confere a expiração na hora,
// então o janitor é só limpeza de memória.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go store.janitor()
	return store
}

func (m *MemoryStore) Create(ctx context.Context, userID int) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.sessions[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
	return token, nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (int, error) {
	m.mu.RLock()
	entry, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, ErrSessionNotFound
	}
	return entry.userID, nil
}

func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// Close encerra o janitor. Seguro chamar mais de uma vez.
func (m *MemoryStore) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stop:
			return
		}
	}
}

func (m *MemoryStore) cleanup() {
	now := time.Now()
	m.mu.Lock()
	for token, entry := range m.sessions {
		if now.After(entry.expiresAt) {
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()
}
