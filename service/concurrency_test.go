package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/n3d1117/book-manager/model"
)

// The duplicate-check-then-insert and existence-check-then-delete
// sequences are classic check-then-act races. They are safe only because
// each service call is one transaction: the store's conflict detection
// serializes competing writers, so these tests drive real concurrency,
// not mocks.

const concurrentCallers = 16

func TestConcurrentAddsSameIDExactlyOneSurvives(t *testing.T) {
	authors, _ := newTestServices()
	ctx := context.Background()

	results := make([]error, concurrentCallers)
	var g errgroup.Group
	for i := 0; i < concurrentCallers; i++ {
		i := i
		g.Go(func() error {
			results[i] = authors.Add(ctx, &model.Author{ID: "1", Name: "George Orwell"})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var wins, duplicates int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			var dup *DuplicateIDError
			require.ErrorAs(t, err, &dup)
			duplicates++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, concurrentCallers-1, duplicates)

	all, err := authors.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConcurrentDeletesSameIDExactlyOneSucceeds(t *testing.T) {
	authors, _ := newTestServices()
	ctx := context.Background()

	require.NoError(t, authors.Add(ctx, &model.Author{ID: "1", Name: "George Orwell"}))

	results := make([]error, concurrentCallers)
	var g errgroup.Group
	for i := 0; i < concurrentCallers; i++ {
		i := i
		g.Go(func() error {
			results[i] = authors.Delete(ctx, "1")
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var wins, misses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		default:
			var notFound *NotFoundError
			require.True(t, errors.As(err, &notFound), "unexpected error: %v", err)
			misses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, concurrentCallers-1, misses)

	all, err := authors.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
