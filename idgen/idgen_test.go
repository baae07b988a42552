package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUIDIsParseable(t *testing.T) {
	_, err := uuid.Parse(NewUUID())
	require.NoError(t, err)
}

func TestNewULIDIsParseable(t *testing.T) {
	_, err := ulid.Parse(NewULID())
	require.NoError(t, err)
}

func TestGeneratorsAreSwappable(t *testing.T) {
	defer UseUUID(func() string { return uuid.New().String() })
	UseUUID(func() string { return "fixed" })

	assert.Equal(t, "fixed", NewUUID())
}

func TestForScheme(t *testing.T) {
	_, err := ulid.Parse(ForScheme("ulid")())
	require.NoError(t, err)

	_, err = uuid.Parse(ForScheme("uuid")())
	require.NoError(t, err)

	// Unknown schemes fall back to UUID.
	_, err = uuid.Parse(ForScheme("whatever")())
	require.NoError(t, err)
}
