package resolve

import (
	"log/slog"
	"sync"

	"cinelist/internal/logging"
	"cinelist/internal/records"
)

// Resolver maps natural keys to surrogate IDs for every entity kind.
type Resolver struct {
	dir    string
	logger *slog.Logger
	kinds  map[records.Entity]*kindState
}

// kindState is one entity kind's ID space. The mutex confines creations to
// a single writer; lookups share the read lock.
type kindState struct {
	mu   sync.RWMutex
	ids  map[string]int64
	next int64
}

// New creates a resolver with an empty ID space per entity kind. dir is
// where snapshots live; an empty dir disables persistence (Snapshot and
// Restore become no-ops).
func New(dir string, logger *slog.Logger) *Resolver {
	logger = logging.NewComponentLogger(logger, "resolve")
	kinds := make(map[records.Entity]*kindState, len(records.AllEntities))
	for _, kind := range records.AllEntities {
		kinds[kind] = &kindState{ids: make(map[string]int64), next: 1}
	}
	return &Resolver{dir: dir, logger: logger, kinds: kinds}
}

// ResolveOrCreate returns the surrogate ID for key, assigning the next ID
// for the kind on first sight. created reports whether this call allocated
// the ID.
func (r *Resolver) ResolveOrCreate(kind records.Entity, key string) (id int64, created bool) {
	s := r.kinds[kind]
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.ids[key]; ok {
		return id, false
	}
	id = s.next
	s.next++
	s.ids[key] = id
	return id, true
}

// Lookup returns the surrogate ID for key without creating one.
func (r *Resolver) Lookup(kind records.Entity, key string) (int64, bool) {
	s := r.kinds[kind]
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.ids[key]
	return id, ok
}

// Adopt records an ID that already exists in the destination store, so
// later lookups hit the cache. The next-ID counter moves past adopted IDs
// to keep allocation monotonic.
func (r *Resolver) Adopt(kind records.Entity, key string, id int64) {
	s := r.kinds[kind]
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[key]; ok {
		return
	}
	s.ids[key] = id
	if id >= s.next {
		s.next = id + 1
	}
}

// Allocate assigns the next ID for the kind without recording a key.
// Dependent rows (ratings, business figures, locations, biography facts)
// are never deduplicated, so they take identities straight off the counter.
func (r *Resolver) Allocate(kind records.Entity) int64 {
	s := r.kinds[kind]
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	return id
}

// Seed advances the kind's counter to at least next. The pipeline seeds
// counters past rows committed by earlier runs when no snapshot is
// available, so fresh IDs never collide with stored ones.
func (r *Resolver) Seed(kind records.Entity, next int64) {
	s := r.kinds[kind]
	s.mu.Lock()
	defer s.mu.Unlock()

	if next > s.next {
		s.next = next
	}
}

// Count returns the number of keys mapped for the kind.
func (r *Resolver) Count(kind records.Entity) int {
	s := r.kinds[kind]
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// NextID returns the ID the next creation for the kind would receive.
func (r *Resolver) NextID(kind records.Entity) int64 {
	s := r.kinds[kind]
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.next
}
