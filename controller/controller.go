// Package controller translates user intents into service calls and
// routes each outcome to the view. The view is a capability interface of
// named callbacks; raw storage errors never reach it.
package controller

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/service"
)

// View receives one callback per user-visible outcome.
type View interface {
	ShowAllAuthors(authors []model.Author)
	ShowAllBooks(books []model.Book)

	AuthorAdded(author model.Author)
	AuthorDeleted(author model.Author)
	BookAdded(book model.Book)
	BookDeleted(book model.Book)

	// DeletedAllBooksForAuthor reports the cascade that accompanies an
	// author deletion, before AuthorDeleted.
	DeletedAllBooksForAuthor(author model.Author)

	AuthorNotAddedBecauseAlreadyExists(existing model.Author)
	AuthorNotDeletedBecauseNotFound(author model.Author)
	BookNotAddedBecauseAlreadyExists(existing model.Book)
	BookNotAddedBecauseAuthorNotFound(book model.Book)
	BookNotDeletedBecauseNotFound(book model.Book)
}

// BookManagerController wires the two services to a view.
type BookManagerController struct {
	authors service.AuthorService
	books   service.BookService
	view    View
	log     zerolog.Logger
}

func New(authors service.AuthorService, books service.BookService, view View, log zerolog.Logger) *BookManagerController {
	return &BookManagerController{
		authors: authors,
		books:   books,
		view:    view,
		log:     log.With().Str("component", "controller").Logger(),
	}
}

func (c *BookManagerController) AllAuthors(ctx context.Context) {
	c.log.Debug().Msg("showing all authors")
	authors, err := c.authors.FindAll(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("retrieving authors failed")
		return
	}
	c.view.ShowAllAuthors(authors)
}

func (c *BookManagerController) AllBooks(ctx context.Context) {
	c.log.Debug().Msg("showing all books")
	books, err := c.books.FindAll(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("retrieving books failed")
		return
	}
	c.view.ShowAllBooks(books)
}

func (c *BookManagerController) AddAuthor(ctx context.Context, author model.Author) {
	c.log.Debug().Stringer("author", author).Msg("adding author")
	err := c.authors.Add(ctx, &author)
	if err == nil {
		c.view.AuthorAdded(author)
		return
	}
	var dup *service.DuplicateIDError
	if errors.As(err, &dup) {
		if existing, ok := dup.Existing.(model.Author); ok {
			c.view.AuthorNotAddedBecauseAlreadyExists(existing)
		} else {
			c.view.AuthorNotAddedBecauseAlreadyExists(author)
		}
		return
	}
	c.log.Error().Err(err).Msg("adding author failed")
}

func (c *BookManagerController) DeleteAuthor(ctx context.Context, author model.Author) {
	c.log.Debug().Stringer("author", author).Msg("deleting author")
	err := c.authors.Delete(ctx, author.ID)
	if err == nil {
		c.view.DeletedAllBooksForAuthor(author)
		c.view.AuthorDeleted(author)
		return
	}
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.view.AuthorNotDeletedBecauseNotFound(author)
		return
	}
	c.log.Error().Err(err).Msg("deleting author failed")
}

func (c *BookManagerController) AddBook(ctx context.Context, book model.Book) {
	c.log.Debug().Stringer("book", book).Msg("adding book")
	err := c.books.Add(ctx, &book)
	if err == nil {
		c.view.BookAdded(book)
		return
	}
	var dup *service.DuplicateIDError
	if errors.As(err, &dup) {
		if existing, ok := dup.Existing.(model.Book); ok {
			c.view.BookNotAddedBecauseAlreadyExists(existing)
		} else {
			c.view.BookNotAddedBecauseAlreadyExists(book)
		}
		return
	}
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.view.BookNotAddedBecauseAuthorNotFound(book)
		return
	}
	c.log.Error().Err(err).Msg("adding book failed")
}

func (c *BookManagerController) DeleteBook(ctx context.Context, book model.Book) {
	c.log.Debug().Stringer("book", book).Msg("deleting book")
	err := c.books.Delete(ctx, book.ID)
	if err == nil {
		c.view.BookDeleted(book)
		return
	}
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.view.BookNotDeletedBecauseNotFound(book)
		return
	}
	c.log.Error().Err(err).Msg("deleting book failed")
}
