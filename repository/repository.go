// Package repository defines the data-access contracts shared by every
// storage backend. Repositories are transient: a factory builds a fresh
// pair per transaction, and the session scoping flows through the
// context handed to the unit of work by the transaction manager.
package repository

import (
	"context"

	"github.com/n3d1117/book-manager/model"
)

// Repository is the generic CRUD contract mapping one entity type to one
// collection. All operations run within the session carried by ctx, so
// they are transactionally consistent with earlier writes in the same
// unit of work.
type Repository[T model.Entity] interface {
	// FindAll returns every document in the collection, in insertion
	// order. An empty collection yields an empty slice.
	FindAll(ctx context.Context) ([]T, error)

	// FindByID returns the entity with the given id, or (nil, nil) when
	// absent. Absence is a routine outcome for existence checks, not an
	// error.
	FindByID(ctx context.Context, id string) (*T, error)

	// Add inserts the entity unconditionally. Duplicate prevention is a
	// service-layer concern.
	Add(ctx context.Context, t T) error

	// Delete removes the entity with the given id. Deleting an absent id
	// is a no-op.
	Delete(ctx context.Context, id string) error
}

// AuthorRepository maps authors to their collection.
type AuthorRepository interface {
	Repository[model.Author]
}

// BookRepository maps books to their collection.
type BookRepository interface {
	Repository[model.Book]

	// DeleteAllForAuthor removes every book whose authorId equals the
	// given value, in one bulk operation.
	DeleteAllForAuthor(ctx context.Context, authorID string) error
}

// Factory produces the matched pair of repositories for one unit of
// work. Implementations must be cheap to call repeatedly: the only
// shared state is the session, and that travels in the context.
type Factory interface {
	Authors() AuthorRepository
	Books() BookRepository
}
