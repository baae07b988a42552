package memory

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3d1117/book-manager/model"
)

func newTestFactory() (*Store, *Factory) {
	store := NewStore()
	store.CreateCollection("authors")
	store.CreateCollection("books")
	return store, NewFactory(store, "authors", "books", zerolog.Nop())
}

func TestStoreCollections(t *testing.T) {
	store := NewStore()
	assert.False(t, store.HasCollection("authors"))

	store.CreateCollection("authors")
	store.CreateCollection("authors") // idempotent
	assert.True(t, store.HasCollection("authors"))
	assert.Equal(t, []string{"authors"}, store.CollectionNames())
}

func TestRepositoryRoundTrip(t *testing.T) {
	_, f := newTestFactory()
	ctx := context.Background()
	authors := f.Authors()

	orwell := model.Author{ID: "1", Name: "George Orwell"}
	require.NoError(t, authors.Add(ctx, orwell))

	found, err := authors.FindByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, orwell, *found)
}

func TestFindByIDAbsentIsNotAnError(t *testing.T) {
	_, f := newTestFactory()

	found, err := f.Authors().FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindAllPreservesInsertionOrder(t *testing.T) {
	_, f := newTestFactory()
	ctx := context.Background()
	books := f.Books()

	b1 := model.Book{ID: "1", Title: "Animal Farm", PageCount: 93, AuthorID: "1"}
	b2 := model.Book{ID: "2", Title: "1984", PageCount: 283, AuthorID: "1"}
	require.NoError(t, books.Add(ctx, b1))
	require.NoError(t, books.Add(ctx, b2))

	all, err := books.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Book{b1, b2}, all)
}

func TestFindAllEmptyCollection(t *testing.T) {
	_, f := newTestFactory()

	all, err := f.Authors().FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAddDuplicateKey(t *testing.T) {
	_, f := newTestFactory()
	ctx := context.Background()

	require.NoError(t, f.Authors().Add(ctx, model.Author{ID: "1", Name: "X"}))
	err := f.Authors().Add(ctx, model.Author{ID: "1", Name: "Y"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	_, f := newTestFactory()

	assert.NoError(t, f.Authors().Delete(context.Background(), "missing"))
}

func TestDeleteAllForAuthor(t *testing.T) {
	_, f := newTestFactory()
	ctx := context.Background()
	books := f.Books()

	require.NoError(t, books.Add(ctx, model.Book{ID: "1", Title: "Animal Farm", AuthorID: "1"}))
	require.NoError(t, books.Add(ctx, model.Book{ID: "2", Title: "1984", AuthorID: "1"}))
	unrelated := model.Book{ID: "3", Title: "The Da Vinci Code", AuthorID: "2"}
	require.NoError(t, books.Add(ctx, unrelated))

	require.NoError(t, books.DeleteAllForAuthor(ctx, "1"))

	all, err := books.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Book{unrelated}, all)
}

func TestMissingCollection(t *testing.T) {
	store := NewStore()
	f := NewFactory(store, "authors", "books", zerolog.Nop())

	_, err := f.Authors().FindAll(context.Background())
	assert.ErrorIs(t, err, ErrNoCollection)
}
