package mongodb

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/n3d1117/book-manager/transaction"
)

// Manager runs units of work inside MongoDB multi-document transactions:
// primary read preference, local read concern, majority write concern.
// Each call opens its own session and ends it on every exit path. The
// driver retries transient transaction errors inside WithTransaction; the
// manager itself makes a single attempt.
type Manager struct {
	client  *mongo.Client
	factory *Factory
	log     zerolog.Logger
}

// NewManager creates a transaction manager and makes sure both collections
// exist. Multi-document transactions cannot create collections on servers
// up to MongoDB 4.2, so missing ones are created here, once, before any
// transaction runs.
func NewManager(ctx context.Context, client *mongo.Client, dbName, authorsColl, booksColl string, log zerolog.Logger) (*Manager, error) {
	db := client.Database(dbName)
	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections of %s: %w", dbName, err)
	}
	for _, name := range []string{authorsColl, booksColl} {
		if slices.Contains(existing, name) {
			continue
		}
		log.Debug().Str("collection", name).Msg("creating collection")
		if err := db.CreateCollection(ctx, name); err != nil {
			return nil, fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	return &Manager{
		client:  client,
		factory: NewFactory(client, dbName, authorsColl, booksColl, log),
		log:     log,
	}, nil
}

func (m *Manager) InTransaction(ctx context.Context, code transaction.Code) (any, error) {
	sess, err := m.client.StartSession()
	if err != nil {
		m.log.Error().Err(err).Msg("starting session failed")
		return nil, fmt.Errorf("%w: %v", transaction.ErrAborted, err)
	}
	defer sess.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadPreference(readpref.Primary()).
		SetReadConcern(readconcern.Local()).
		SetWriteConcern(writeconcern.Majority())

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return code(sc, m.factory)
	}, txOpts)
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
