package memory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/n3d1117/book-manager/repository"
	"github.com/n3d1117/book-manager/transaction"
)

// Manager executes units of work against an in-memory store with the same
// contract as the MongoDB manager: one session per call, ended exactly
// once, business errors propagated, infrastructure failures logged and
// wrapped in transaction.ErrAborted.
type Manager struct {
	store   *Store
	factory *Factory
	log     zerolog.Logger
}

// NewManager creates a manager over store. Both collections are created
// up front if missing, so every transaction runs against existing
// collections.
func NewManager(store *Store, authorsColl, booksColl string, log zerolog.Logger) *Manager {
	for _, name := range []string{authorsColl, booksColl} {
		if !store.HasCollection(name) {
			log.Debug().Str("collection", name).Msg("creating collection")
			store.CreateCollection(name)
		}
	}
	return &Manager{
		store:   store,
		factory: NewFactory(store, authorsColl, booksColl, log),
		log:     log,
	}
}

func (m *Manager) InTransaction(ctx context.Context, code transaction.Code) (any, error) {
	sess := m.store.StartSession()
	defer sess.EndSession()

	res, err := sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return code(ctx, m.factory)
	})
	if err != nil {
		if transaction.IsBusiness(err) {
			return nil, err
		}
		m.log.Error().Err(err).Msg("transaction aborted")
		return nil, fmt.Errorf("%w: %v", transaction.ErrAborted, err)
	}
	return res, nil
}

var _ transaction.Manager = (*Manager)(nil)
var _ repository.Factory = (*Factory)(nil)
