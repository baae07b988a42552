package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/repository"
	"github.com/n3d1117/book-manager/transaction"
)

// AuthorTransactionalService implements AuthorService by delegating every
// operation to one unit of work.
type AuthorTransactionalService struct {
	tm  transaction.Manager
	log zerolog.Logger
}

func NewAuthorService(tm transaction.Manager, log zerolog.Logger) *AuthorTransactionalService {
	return &AuthorTransactionalService{tm: tm, log: log.With().Str("service", "author").Logger()}
}

func (s *AuthorTransactionalService) FindAll(ctx context.Context) ([]model.Author, error) {
	s.log.Debug().Msg("retrieving all authors")
	return transaction.Execute(ctx, s.tm, func(ctx context.Context, f repository.Factory) ([]model.Author, error) {
		return f.Authors().FindAll(ctx)
	})
}

func (s *AuthorTransactionalService) FindByID(ctx context.Context, id string) (*model.Author, error) {
	s.log.Debug().Str("id", id).Msg("finding author")
	return transaction.Execute(ctx, s.tm, func(ctx context.Context, f repository.Factory) (*model.Author, error) {
		return f.Authors().FindByID(ctx, id)
	})
}

func (s *AuthorTransactionalService) Add(ctx context.Context, author *model.Author) error {
	if author == nil {
		return nil
	}
	s.log.Debug().Str("id", author.ID).Msg("adding author")
	_, err := s.tm.InTransaction(ctx, func(ctx context.Context, f repository.Factory) (any, error) {
		existing, err := f.Authors().FindByID(ctx, author.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicateIDError{Entity: "author", ID: author.ID, Existing: *existing}
		}
		return nil, f.Authors().Add(ctx, *author)
	})
	return err
}

func (s *AuthorTransactionalService) Delete(ctx context.Context, id string) error {
	s.log.Debug().Str("id", id).Msg("deleting author")
	_, err := s.tm.InTransaction(ctx, func(ctx context.Context, f repository.Factory) (any, error) {
		author, err := f.Authors().FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, &NotFoundError{Entity: "author", ID: id}
		}
		// Books first, then the author: the cascade and the delete commit
		// or abort together.
		if err := f.Books().DeleteAllForAuthor(ctx, id); err != nil {
			return nil, err
		}
		return nil, f.Authors().Delete(ctx, id)
	})
	return err
}

var _ AuthorService = (*AuthorTransactionalService)(nil)
