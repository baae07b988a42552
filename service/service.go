// Package service layers the business rules on top of transactional
// repository access: duplicate detection on add, existence checks on
// delete, and the cascading delete of an author's books inside the same
// transaction as the author delete. Every operation is one unit of work;
// the check-then-act sequences are made safe by transaction isolation
// alone, there is no application-level lock.
package service

import (
	"context"

	"github.com/n3d1117/book-manager/model"
)

// AuthorService is the business-facing author API.
type AuthorService interface {
	FindAll(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id string) (*model.Author, error)

	// Add inserts the author unless its id is taken, in which case it
	// returns a *DuplicateIDError. A nil author is a no-op.
	Add(ctx context.Context, author *model.Author) error

	// Delete removes the author and every book referencing it, all in one
	// transaction. Returns *NotFoundError when the id does not exist.
	Delete(ctx context.Context, id string) error
}

// BookService is the business-facing book API.
type BookService interface {
	FindAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id string) (*model.Book, error)

	// Add inserts the book unless its id is taken (*DuplicateIDError) or
	// its author does not exist (*NotFoundError for the author). A nil
	// book is a no-op.
	Add(ctx context.Context, book *model.Book) error

	// Delete removes the book. Returns *NotFoundError when the id does
	// not exist.
	Delete(ctx context.Context, id string) error
}
