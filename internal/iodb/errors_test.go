package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5,
		"Should have 5 vars: host, port, host, user, database")
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

// TestTableErrors_Structure verifies table related errors.
func TestTableErrors_Structure(t *testing.T) {
	originalErr := errors.New("check failed")

	err := TableExistsCheckError("species", originalErr)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBTableExistsCheckError, gnErr.Code)
	assert.Equal(t, []any{"species"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)

	err = MissingTableError("species")
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBMissingTableError, gnErr.Code)
	assert.Equal(t, []any{"species"}, gnErr.Vars)
}

// TestLoadError_Structure verifies error structure.
func TestLoadError_Structure(t *testing.T) {
	originalErr := errors.New("duplicate key")

	err := LoadError("seed.sql", 3, originalErr)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBLoadError, gnErr.Code)
	assert.Equal(t, "seed.sql", gnErr.Vars[0])
	assert.Equal(t, 3, gnErr.Vars[1])
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
