// Package idgen generates the externally assigned entity ids used when
// the operator does not provide one. Generators are swappable so tests
// can pin deterministic ids.
package idgen

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var _uuidGenerator = func() string {
	return uuid.New().String()
}

var _ulidGenerator = func() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	id, _ := ulid.New(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}

func NewUUID() string {
	return _uuidGenerator()
}

func NewULID() string {
	return _ulidGenerator()
}

// UseUUID replaces the UUID generator.
func UseUUID(fn func() string) {
	_uuidGenerator = fn
}

// UseULID replaces the ULID generator.
func UseULID(fn func() string) {
	_ulidGenerator = fn
}

// ForScheme returns the generator for the named scheme, defaulting to
// UUID for anything unrecognized.
func ForScheme(scheme string) func() string {
	if scheme == "ulid" {
		return NewULID
	}
	return NewUUID
}
