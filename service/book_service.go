package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/repository"
	"github.com/n3d1117/book-manager/transaction"
)

// BookTransactionalService implements BookService by delegating every
// operation to one unit of work.
type BookTransactionalService struct {
	tm  transaction.Manager
	log zerolog.Logger
}

func NewBookService(tm transaction.Manager, log zerolog.Logger) *BookTransactionalService {
	return &BookTransactionalService{tm: tm, log: log.With().Str("service", "book").Logger()}
}

func (s *BookTransactionalService) FindAll(ctx context.Context) ([]model.Book, error) {
	s.log.Debug().Msg("retrieving all books")
	return transaction.Execute(ctx, s.tm, func(ctx context.Context, f repository.Factory) ([]model.Book, error) {
		return f.Books().FindAll(ctx)
	})
}

func (s *BookTransactionalService) FindByID(ctx context.Context, id string) (*model.Book, error) {
	s.log.Debug().Str("id", id).Msg("finding book")
	return transaction.Execute(ctx, s.tm, func(ctx context.Context, f repository.Factory) (*model.Book, error) {
		return f.Books().FindByID(ctx, id)
	})
}

func (s *BookTransactionalService) Add(ctx context.Context, book *model.Book) error {
	if book == nil {
		return nil
	}
	s.log.Debug().Str("id", book.ID).Msg("adding book")
	_, err := s.tm.InTransaction(ctx, func(ctx context.Context, f repository.Factory) (any, error) {
		existing, err := f.Books().FindByID(ctx, book.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicateIDError{Entity: "book", ID: book.ID, Existing: *existing}
		}
		author, err := f.Authors().FindByID(ctx, book.AuthorID)
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, &NotFoundError{Entity: "author", ID: book.AuthorID}
		}
		return nil, f.Books().Add(ctx, *book)
	})
	return err
}

func (s *BookTransactionalService) Delete(ctx context.Context, id string) error {
	s.log.Debug().Str("id", id).Msg("deleting book")
	_, err := s.tm.InTransaction(ctx, func(ctx context.Context, f repository.Factory) (any, error) {
		book, err := f.Books().FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, &NotFoundError{Entity: "book", ID: id}
		}
		return nil, f.Books().Delete(ctx, id)
	})
	return err
}

var _ BookService = (*BookTransactionalService)(nil)
