package memory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/repository"
)

// collRepo is the generic collection-backed repository. One instantiation
// per entity type, each naming its collection explicitly. When the context
// carries a transaction the operations go through it; otherwise each call
// is its own atomic commit.
type collRepo[T model.Entity] struct {
	store *Store
	coll  string
	log   zerolog.Logger
}

func (r *collRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	r.log.Debug().Str("collection", r.coll).Msg("finding all documents")

	var (
		docs []any
		err  error
	)
	if t, ok := txFromContext(ctx); ok {
		docs, err = t.findAll(r.coll)
	} else {
		docs, err = r.store.findAll(r.coll)
	}
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.(T))
	}
	return out, nil
}

func (r *collRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	r.log.Debug().Str("collection", r.coll).Str("id", id).Msg("finding document by id")

	var (
		doc   any
		found bool
		err   error
	)
	if t, ok := txFromContext(ctx); ok {
		doc, found, err = t.findByID(r.coll, id)
	} else {
		doc, found, err = r.store.findByID(r.coll, id)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	entity := doc.(T)
	return &entity, nil
}

func (r *collRepo[T]) Add(ctx context.Context, entity T) error {
	r.log.Debug().Str("collection", r.coll).Str("id", entity.EntityID()).Msg("adding document")

	if t, ok := txFromContext(ctx); ok {
		return t.insert(r.coll, entity.EntityID(), entity)
	}
	return r.store.insert(r.coll, entity.EntityID(), entity)
}

func (r *collRepo[T]) Delete(ctx context.Context, id string) error {
	r.log.Debug().Str("collection", r.coll).Str("id", id).Msg("deleting document")

	if t, ok := txFromContext(ctx); ok {
		return t.delete(r.coll, id)
	}
	return r.store.delete(r.coll, id)
}

type authorRepo struct {
	collRepo[model.Author]
}

type bookRepo struct {
	collRepo[model.Book]
}

func (r *bookRepo) DeleteAllForAuthor(ctx context.Context, authorID string) error {
	r.log.Debug().Str("collection", r.coll).Str("authorId", authorID).Msg("deleting all books for author")

	match := func(doc any) bool {
		book, ok := doc.(model.Book)
		return ok && book.AuthorID == authorID
	}
	if t, ok := txFromContext(ctx); ok {
		return t.deleteWhere(r.coll, match)
	}
	return r.store.deleteWhere(r.coll, match)
}

// Factory builds repositories over an in-memory store. It is stateless
// beyond the store handle and collection names: the session, when any,
// travels in the context of each call.
type Factory struct {
	store   *Store
	authors string
	books   string
	log     zerolog.Logger
}

// NewFactory creates a repository factory bound to the given store and
// collection names.
func NewFactory(store *Store, authorsColl, booksColl string, log zerolog.Logger) *Factory {
	return &Factory{store: store, authors: authorsColl, books: booksColl, log: log}
}

func (f *Factory) Authors() repository.AuthorRepository {
	return &authorRepo{collRepo[model.Author]{
		store: f.store,
		coll:  f.authors,
		log:   f.log.With().Str("repository", "author").Logger(),
	}}
}

func (f *Factory) Books() repository.BookRepository {
	return &bookRepo{collRepo[model.Book]{
		store: f.store,
		coll:  f.books,
		log:   f.log.With().Str("repository", "book").Logger(),
	}}
}
