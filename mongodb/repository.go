// Package mongodb implements the repositories and the transaction manager
// on top of the official MongoDB driver. Documents map the entity structs
// directly through their bson tags, with the entity id stored as _id.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/repository"
)

// collRepo is the generic collection-backed repository. Session scoping is
// carried by ctx: inside a unit of work the transaction manager hands the
// code a mongo.SessionContext, so every operation here joins that
// transaction.
type collRepo[T model.Entity] struct {
	coll *mongo.Collection
	log  zerolog.Logger
}

func (r *collRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	r.log.Debug().Str("collection", r.coll.Name()).Msg("finding all documents")

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find on %s: %w", r.coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode from %s: %w", r.coll.Name(), err)
	}
	return out, nil
}

func (r *collRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	r.log.Debug().Str("collection", r.coll.Name()).Str("id", id).Msg("finding document by id")

	var entity T
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %q on %s: %w", id, r.coll.Name(), err)
	}
	return &entity, nil
}

func (r *collRepo[T]) Add(ctx context.Context, entity T) error {
	r.log.Debug().Str("collection", r.coll.Name()).Str("id", entity.EntityID()).Msg("adding document")

	if _, err := r.coll.InsertOne(ctx, entity); err != nil {
		return fmt.Errorf("insert %q into %s: %w", entity.EntityID(), r.coll.Name(), err)
	}
	return nil
}

func (r *collRepo[T]) Delete(ctx context.Context, id string) error {
	r.log.Debug().Str("collection", r.coll.Name()).Str("id", id).Msg("deleting document")

	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete %q from %s: %w", id, r.coll.Name(), err)
	}
	return nil
}

type authorRepo struct {
	collRepo[model.Author]
}

type bookRepo struct {
	collRepo[model.Book]
}

func (r *bookRepo) DeleteAllForAuthor(ctx context.Context, authorID string) error {
	r.log.Debug().Str("collection", r.coll.Name()).Str("authorId", authorID).Msg("deleting all books for author")

	if _, err := r.coll.DeleteMany(ctx, bson.D{{Key: "authorId", Value: authorID}}); err != nil {
		return fmt.Errorf("delete books of author %q from %s: %w", authorID, r.coll.Name(), err)
	}
	return nil
}

// Factory builds repositories over one database. Repositories are cheap
// throwaway values; the factory itself holds only the collection handles.
type Factory struct {
	authors *mongo.Collection
	books   *mongo.Collection
	log     zerolog.Logger
}

// NewFactory creates a repository factory bound to the named database and
// collections of client.
func NewFactory(client *mongo.Client, dbName, authorsColl, booksColl string, log zerolog.Logger) *Factory {
	db := client.Database(dbName)
	return &Factory{
		authors: db.Collection(authorsColl),
		books:   db.Collection(booksColl),
		log:     log,
	}
}

func (f *Factory) Authors() repository.AuthorRepository {
	return &authorRepo{collRepo[model.Author]{
		coll: f.authors,
		log:  f.log.With().Str("repository", "author").Logger(),
	}}
}

func (f *Factory) Books() repository.BookRepository {
	return &bookRepo{collRepo[model.Book]{
		coll: f.books,
		log:  f.log.With().Str("repository", "book").Logger(),
	}}
}

var _ repository.Factory = (*Factory)(nil)
