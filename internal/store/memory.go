// apps/go-filter/internal/store/memory.go
//
// Query history persistence.
//
// Characteristics:
//   - Store is implemented in memory (this file) and on SQLite (sqlite.go).
//   - The memory store is concurrency-safe via RWMutex and loses its state
//     when the process restarts.
//   - The memory store keeps at most its capacity, dropping the oldest rows.
//   - Recent returns newest first.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Query is one recorded filter request.
type Query struct {
	ID        string    `json:"id"`
	Unused    string    `json:"unused"`
	Feedback  []string  `json:"feedback"`
	Matches   int       `json:"matches"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store defines the persistence interface for query history.
type Store interface {
	// Save records q. Empty ID and zero CreatedAt are filled in.
	Save(ctx context.Context, q *Query) error

	// Recent returns up to limit queries, newest first.
	Recent(ctx context.Context, limit int) ([]Query, error)

	Close() error
}

// DefaultMemoryCapacity is used when NewMemoryStore is given capacity <= 0.
const DefaultMemoryCapacity = 1000

// memory is an in-memory slice-backed Store.
type memory struct {
	mu      sync.RWMutex // guards queries
	queries []Query      // oldest first
	max     int
}

// NewMemoryStore constructs a new in-memory Store holding at most capacity
// queries.
func NewMemoryStore(capacity int) Store {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &memory{max: capacity}
}

func (m *memory) Save(ctx context.Context, q *Query) error {
	fill(q)
	c := *q
	c.Feedback = append([]string(nil), q.Feedback...)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queries) >= m.max {
		n := copy(m.queries, m.queries[len(m.queries)-m.max+1:])
		m.queries = m.queries[:n]
	}
	m.queries = append(m.queries, c)
	return nil
}

func (m *memory) Recent(ctx context.Context, limit int) ([]Query, error) {
	if limit <= 0 {
		return []Query{}, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Query, 0, min(limit, len(m.queries)))
	for i := len(m.queries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.queries[i])
	}
	return out, nil
}

func (m *memory) Close() error { return nil }

// fill assigns an ID and timestamp to q where missing.
func fill(q *Query) {
	if q.ID == "" {
		q.ID = randomID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
