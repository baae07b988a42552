// Package memory implements the document-store contract fully in process:
// named collections, sessions and snapshot-isolated multi-collection
// transactions with first-committer-wins write-conflict detection. It backs
// the test suite and the CLI when no MongoDB deployment is configured.
package memory

import (
	"errors"
	"sync"
)

var (
	// ErrDuplicateKey is returned by an insert whose id already exists in
	// the collection. It is a storage-level failure, not a business error.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNoCollection is returned when an operation targets a collection
	// that has not been created.
	ErrNoCollection = errors.New("collection does not exist")

	// ErrSessionEnded is returned when a transaction is started on a
	// session that has already been released.
	ErrSessionEnded = errors.New("session already ended")
)

// Store holds committed documents. All access is serialized through one
// mutex; transactions read from a snapshot and validate their write set
// against the commit clock, so conflicting check-then-act sequences
// cannot both commit.
type Store struct {
	mu    sync.Mutex
	colls map[string]*collection
	clock uint64

	// observer, when set, is invoked for every session the store opens.
	// Tests use it to assert session lifecycle properties.
	observer func(*Session)
}

type collection struct {
	docs  map[string]any
	order []string          // insertion order, for FindAll
	mod   map[string]uint64 // id -> commit clock of last write or delete
}

func newCollection() *collection {
	return &collection{
		docs: make(map[string]any),
		mod:  make(map[string]uint64),
	}
}

// NewStore creates an empty store with no collections.
func NewStore() *Store {
	return &Store{colls: make(map[string]*collection)}
}

// CreateCollection creates the named collection. Creating an existing
// collection is a no-op.
func (s *Store) CreateCollection(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.colls[name]; !ok {
		s.colls[name] = newCollection()
	}
}

// HasCollection reports whether the named collection exists.
func (s *Store) HasCollection(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.colls[name]
	return ok
}

// CollectionNames returns the names of all collections, in no particular
// order.
func (s *Store) CollectionNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.colls))
	for name := range s.colls {
		names = append(names, name)
	}
	return names
}

// StartSession opens a new session. The caller must release it with
// EndSession once the unit of work is done.
func (s *Store) StartSession() *Session {
	sess := &Session{store: s}
	s.mu.Lock()
	observer := s.observer
	s.mu.Unlock()
	if observer != nil {
		observer(sess)
	}
	return sess
}

// ObserveSessions registers fn to be called for every session opened from
// now on. Intended for tests.
func (s *Store) ObserveSessions(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// The committed-path operations below are used when no transaction is in
// flight (auto-commit). Each one is its own atomic commit.

func (s *Store) findAll(coll string) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colls[coll]
	if !ok {
		return nil, ErrNoCollection
	}
	out := make([]any, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.docs[id])
	}
	return out, nil
}

func (s *Store) findByID(coll, id string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colls[coll]
	if !ok {
		return nil, false, ErrNoCollection
	}
	doc, ok := c.docs[id]
	return doc, ok, nil
}

func (s *Store) insert(coll, id string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colls[coll]
	if !ok {
		return ErrNoCollection
	}
	if _, exists := c.docs[id]; exists {
		return ErrDuplicateKey
	}
	s.clock++
	c.docs[id] = doc
	c.order = append(c.order, id)
	c.mod[id] = s.clock
	return nil
}

func (s *Store) delete(coll, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colls[coll]
	if !ok {
		return ErrNoCollection
	}
	if _, exists := c.docs[id]; !exists {
		return nil
	}
	s.clock++
	delete(c.docs, id)
	c.removeFromOrder(id)
	c.mod[id] = s.clock
	return nil
}

func (s *Store) deleteWhere(coll string, match func(any) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colls[coll]
	if !ok {
		return ErrNoCollection
	}
	var victims []string
	for _, id := range c.order {
		if match(c.docs[id]) {
			victims = append(victims, id)
		}
	}
	if len(victims) == 0 {
		return nil
	}
	s.clock++
	for _, id := range victims {
		delete(c.docs, id)
		c.removeFromOrder(id)
		c.mod[id] = s.clock
	}
	return nil
}

func (c *collection) removeFromOrder(id string) {
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
