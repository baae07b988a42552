package controller

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/n3d1117/book-manager/memory"
	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/service"
)

type mockView struct {
	mock.Mock
}

func (v *mockView) ShowAllAuthors(authors []model.Author) { v.Called(authors) }
func (v *mockView) ShowAllBooks(books []model.Book)       { v.Called(books) }
func (v *mockView) AuthorAdded(a model.Author)            { v.Called(a) }
func (v *mockView) AuthorDeleted(a model.Author)          { v.Called(a) }
func (v *mockView) BookAdded(b model.Book)                { v.Called(b) }
func (v *mockView) BookDeleted(b model.Book)              { v.Called(b) }
func (v *mockView) DeletedAllBooksForAuthor(a model.Author) {
	v.Called(a)
}
func (v *mockView) AuthorNotAddedBecauseAlreadyExists(a model.Author) { v.Called(a) }
func (v *mockView) AuthorNotDeletedBecauseNotFound(a model.Author)    { v.Called(a) }
func (v *mockView) BookNotAddedBecauseAlreadyExists(b model.Book)     { v.Called(b) }
func (v *mockView) BookNotAddedBecauseAuthorNotFound(b model.Book)    { v.Called(b) }
func (v *mockView) BookNotDeletedBecauseNotFound(b model.Book)        { v.Called(b) }

func newTestController() (*BookManagerController, *mockView) {
	store := memory.NewStore()
	tm := memory.NewManager(store, "authors", "books", zerolog.Nop())
	view := &mockView{}
	ctrl := New(
		service.NewAuthorService(tm, zerolog.Nop()),
		service.NewBookService(tm, zerolog.Nop()),
		view,
		zerolog.Nop(),
	)
	return ctrl, view
}

func TestAllAuthorsShowsAuthors(t *testing.T) {
	ctrl, view := newTestController()
	ctx := context.Background()

	orwell := model.Author{ID: "1", Name: "George Orwell"}
	view.On("AuthorAdded", orwell).Once()
	ctrl.AddAuthor(ctx, orwell)

	view.On("ShowAllAuthors", []model.Author{orwell}).Once()
	ctrl.AllAuthors(ctx)

	view.AssertExpectations(t)
}

func TestAllBooksShowsBooks(t *testing.T) {
	ctrl, view := newTestController()
	ctx := context.Background()

	view.On("ShowAllBooks", []model.Book{}).Once()
	ctrl.AllBooks(ctx)

	view.AssertExpectations(t)
}

func TestAddAuthorDuplicateRoutesExistingToView(t *testing.T) {
	ctrl, view := newTestController()
	ctx := context.Background()

	first := model.Author{ID: "1", Name: "X"}
	view.On("AuthorAdded", first).Once()
	ctrl.AddAuthor(ctx, first)

	view.On("AuthorNotAddedBecauseAlreadyExists", first).Once()
	ctrl.AddAuthor(ctx, model.Author{ID: "1", Name: "Y"})

	view.AssertExpectations(t)
	view.AssertNotCalled(t, "AuthorAdded", model.Author{ID: "1", Name: "Y"})
}

func TestDeleteAuthorReportsCascadeThenDeletion(t *testing.T) {
	ctrl, view := newTestController()
	ctx := context.Background()

	orwell := model.Author{ID: "1", Name: "George Orwell"}
	animalFarm := model.Book{ID: "1", Title: "Animal Farm", PageCount: 93, AuthorID: "1"}
	view.On("AuthorAdded", orwell).Once()
	view.On("BookAdded", animalFarm).Once()
	ctrl.AddAuthor(ctx, orwell)
	ctrl.AddBook(ctx, animalFarm)

	view.On("DeletedAllBooksForAuthor", orwell).Once()
	view.On("AuthorDeleted", orwell).Once()
	ctrl.DeleteAuthor(ctx, orwell)

	view.On("ShowAllBooks", []model.Book{}).Once()
	ctrl.AllBooks(ctx)

	view.AssertExpectations(t)
}

func TestDeleteMissingAuthorRoutesNotFound(t *testing.T) {
	ctrl, view := newTestController()

	ghost := model.Author{ID: "ghost"}
	view.On("AuthorNotDeletedBecauseNotFound", ghost).Once()
	ctrl.DeleteAuthor(context.Background(), ghost)

	view.AssertExpectations(t)
	view.AssertNotCalled(t, "AuthorDeleted", ghost)
}

func TestAddBookWithUnknownAuthorRoutesRejection(t *testing.T) {
	ctrl, view := newTestController()

	orphan := model.Book{ID: "1", Title: "Orphan", AuthorID: "ghost"}
	view.On("BookNotAddedBecauseAuthorNotFound", orphan).Once()
	ctrl.AddBook(context.Background(), orphan)

	view.AssertExpectations(t)
}

func TestDeleteMissingBookRoutesNotFound(t *testing.T) {
	ctrl, view := newTestController()

	ghost := model.Book{ID: "nonexistent"}
	view.On("BookNotDeletedBecauseNotFound", ghost).Once()
	ctrl.DeleteBook(context.Background(), ghost)

	view.AssertExpectations(t)
}
