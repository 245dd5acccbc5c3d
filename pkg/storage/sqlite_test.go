package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteMediumRoundTrip(t *testing.T) {
	m, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer m.Close()

	_, ok, err := m.Load("forms")
	require.NoError(t, err)
	assert.False(t, ok, "fresh database must report the key absent")

	require.NoError(t, m.Save("forms", []byte(`{"forms":[]}`)))

	loaded, ok, err := m.Load("forms")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"forms":[]}`, string(loaded))

	// Save is an upsert: the row is replaced, not duplicated.
	require.NoError(t, m.Save("forms", []byte(`{}`)))
	loaded, ok, err = m.Load("forms")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{}`, string(loaded))
}

func TestSQLiteMediumPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formflow.db")

	m, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, m.Save("submissions", []byte(`{"drafts":[]}`)))
	require.NoError(t, m.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, ok, err := reopened.Load("submissions")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"drafts":[]}`, string(loaded))
}

func TestSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	require.Error(t, err)
}
