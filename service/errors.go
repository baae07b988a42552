package service

import (
	"fmt"

	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/transaction"
)

// DuplicateIDError rejects an add whose id is already taken. It carries
// the pre-existing entity so the caller can reconcile its state.
type DuplicateIDError struct {
	Entity   string // "author" or "book"
	ID       string
	Existing model.Entity
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s with id %q already exists", e.Entity, e.ID)
}

func (e *DuplicateIDError) BusinessRule() string { return "duplicate-id" }

// NotFoundError rejects an operation targeting an id with no matching
// document.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) BusinessRule() string { return "not-found" }

var (
	_ transaction.BusinessError = (*DuplicateIDError)(nil)
	_ transaction.BusinessError = (*NotFoundError)(nil)
)
