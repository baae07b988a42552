// Package transaction defines the unit-of-work contract: a caller-supplied
// function executed exactly once inside a single atomic multi-document
// transaction, with the session released on every exit path.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/n3d1117/book-manager/repository"
)

// ErrAborted wraps infrastructure failures (lost connection, exhausted
// write-conflict retries) surfaced by a Manager after the transaction has
// been aborted. Business errors raised by the unit of work are never
// wrapped in it; they propagate as-is.
var ErrAborted = errors.New("transaction aborted")

// Code is a unit of work. It receives a factory bound to the transaction's
// session and performs repository operations through it. Returning an
// error aborts the transaction; no writes survive.
type Code func(ctx context.Context, f repository.Factory) (any, error)

// Manager executes units of work transactionally.
//
// Error policy: an error carrying the BusinessError marker is returned to
// the caller unchanged after the abort, so the service layer can map it to
// a rejection outcome. Any other failure is logged by the manager and
// returned wrapped in ErrAborted.
type Manager interface {
	InTransaction(ctx context.Context, code Code) (any, error)
}

// BusinessError marks business-rule violations (duplicate id, missing
// entity) that must abort the transaction and still surface to the
// service-layer caller.
type BusinessError interface {
	error

	// BusinessRule names the violated rule, e.g. "duplicate-id".
	BusinessRule() string
}

// IsBusiness reports whether err (or anything it wraps) is a
// business-rule violation.
func IsBusiness(err error) bool {
	var be BusinessError
	return errors.As(err, &be)
}

// Execute runs fn in a transaction and returns its result typed. A nil
// manager result (e.g. a swallowed infrastructure failure path returning
// no value) yields the zero value of R.
func Execute[R any](ctx context.Context, m Manager, fn func(ctx context.Context, f repository.Factory) (R, error)) (R, error) {
	var zero R
	res, err := m.InTransaction(ctx, func(ctx context.Context, f repository.Factory) (any, error) {
		return fn(ctx, f)
	})
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	r, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("transaction: unexpected result type %T", res)
	}
	return r, nil
}
