package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrWriteConflict is returned by a commit whose write set overlaps a
// write committed by another transaction since this one's snapshot was
// taken. WithTransaction retries transparently; callers only see it once
// the retry budget is exhausted.
var ErrWriteConflict = errors.New("transaction write conflict")

// maxTxAttempts bounds the transparent retry loop on write conflicts,
// mirroring the bounded retry the MongoDB driver applies to transient
// transaction errors.
const maxTxAttempts = 16

// Session is one logical transaction context against the store. Sessions
// are single-use per unit of work and must be released with EndSession.
type Session struct {
	store *Store

	mu   sync.Mutex
	ends int
}

// EndSession releases the session. Further transactions on it fail with
// ErrSessionEnded.
func (s *Session) EndSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ends++
}

// Ended reports whether the session has been released.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ends > 0
}

// EndCount returns how many times EndSession has been called. The
// transaction manager contract is exactly once per unit of work.
func (s *Session) EndCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ends
}

// WithTransaction runs fn inside a snapshot-isolated transaction. The
// transaction handle travels in the context passed to fn, so repository
// operations performed with that context read the snapshot and buffer
// their writes. An error from fn aborts: the buffered writes are
// discarded and the error is returned unchanged. A write conflict at
// commit restarts fn on a fresh snapshot, up to maxTxAttempts.
func (s *Session) WithTransaction(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	if s.Ended() {
		return nil, ErrSessionEnded
	}

	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tx := s.store.begin()
		res, err := fn(context.WithValue(ctx, txKey{}, tx))
		if err != nil {
			// Abort: tx-local state is simply dropped.
			return nil, err
		}
		err = tx.commit()
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrWriteConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts", lastErr, maxTxAttempts)
}

type txKey struct{}

func txFromContext(ctx context.Context) (*tx, bool) {
	t, ok := ctx.Value(txKey{}).(*tx)
	return t, ok
}

// tx is a transaction in flight: a private copy of every collection taken
// at begin, plus the set of ids it wrote. Reads and writes operate on the
// copy; commit validates the write set against the store's commit clock
// and publishes atomically.
type tx struct {
	store    *Store
	baseline uint64
	colls    map[string]*collection
	writes   map[string]map[string]struct{} // collection -> touched ids
	done     bool
}

func (s *Store) begin() *tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{
		store:    s,
		baseline: s.clock,
		colls:    make(map[string]*collection, len(s.colls)),
		writes:   make(map[string]map[string]struct{}),
	}
	for name, c := range s.colls {
		snap := newCollection()
		for id, doc := range c.docs {
			snap.docs[id] = doc
		}
		snap.order = append([]string(nil), c.order...)
		t.colls[name] = snap
	}
	return t
}

func (t *tx) touch(coll, id string) {
	ids, ok := t.writes[coll]
	if !ok {
		ids = make(map[string]struct{})
		t.writes[coll] = ids
	}
	ids[id] = struct{}{}
}

func (t *tx) findAll(coll string) ([]any, error) {
	c, ok := t.colls[coll]
	if !ok {
		return nil, ErrNoCollection
	}
	out := make([]any, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.docs[id])
	}
	return out, nil
}

func (t *tx) findByID(coll, id string) (any, bool, error) {
	c, ok := t.colls[coll]
	if !ok {
		return nil, false, ErrNoCollection
	}
	doc, ok := c.docs[id]
	return doc, ok, nil
}

func (t *tx) insert(coll, id string, doc any) error {
	c, ok := t.colls[coll]
	if !ok {
		return ErrNoCollection
	}
	if _, exists := c.docs[id]; exists {
		return ErrDuplicateKey
	}
	c.docs[id] = doc
	c.order = append(c.order, id)
	t.touch(coll, id)
	return nil
}

func (t *tx) delete(coll, id string) error {
	c, ok := t.colls[coll]
	if !ok {
		return ErrNoCollection
	}
	if _, exists := c.docs[id]; !exists {
		return nil
	}
	delete(c.docs, id)
	c.removeFromOrder(id)
	t.touch(coll, id)
	return nil
}

func (t *tx) deleteWhere(coll string, match func(any) bool) error {
	c, ok := t.colls[coll]
	if !ok {
		return ErrNoCollection
	}
	var victims []string
	for _, id := range c.order {
		if match(c.docs[id]) {
			victims = append(victims, id)
		}
	}
	for _, id := range victims {
		delete(c.docs, id)
		c.removeFromOrder(id)
		t.touch(coll, id)
	}
	return nil
}

// commit publishes the write set, first-committer wins. Any id in the
// write set that another transaction committed after this one's baseline
// fails the whole commit with ErrWriteConflict.
func (t *tx) commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, ids := range t.writes {
		committed, ok := s.colls[name]
		if !ok {
			return ErrNoCollection
		}
		for id := range ids {
			if committed.mod[id] > t.baseline {
				return ErrWriteConflict
			}
		}
	}

	if len(t.writes) == 0 {
		return nil
	}
	s.clock++
	for name, ids := range t.writes {
		committed := s.colls[name]
		local := t.colls[name]
		for id := range ids {
			_, wasPresent := committed.docs[id]
			doc, nowPresent := local.docs[id]
			switch {
			case nowPresent && !wasPresent:
				committed.docs[id] = doc
				committed.order = append(committed.order, id)
			case nowPresent && wasPresent:
				committed.docs[id] = doc
			case !nowPresent && wasPresent:
				delete(committed.docs, id)
				committed.removeFromOrder(id)
			}
			committed.mod[id] = s.clock
		}
	}
	return nil
}
