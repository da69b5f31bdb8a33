package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kisan-be/internal/apperror"
	"kisan-be/internal/vendor"
)

func openStore(t *testing.T) (*BoltStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := OpenBoltStore(path)
	require.NoError(t, err)
	return store, path
}

func TestManager_Lifecycle(t *testing.T) {
	store, _ := openStore(t)
	defer store.Close()

	m, err := NewManager(store)
	require.NoError(t, err)
	assert.Equal(t, StateNone, m.State())

	_, err = m.Current()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	require.NoError(t, m.Login(&vendor.Session{VendorID: 7, Email: "farm@kisan.in", Name: "Green Farm", Token: "tok"}))
	assert.Equal(t, StateActive, m.State())

	sess, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, uint(7), sess.VendorID)

	require.NoError(t, m.Logout())
	assert.Equal(t, StateCleared, m.State())
	_, err = m.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RestoresFromStore(t *testing.T) {
	store, path := openStore(t)
	m, err := NewManager(store)
	require.NoError(t, err)
	require.NoError(t, m.Login(&vendor.Session{VendorID: 7, Token: "tok"}))
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	m2, err := NewManager(reopened)
	require.NoError(t, err)
	assert.Equal(t, StateActive, m2.State())
	token, err := m2.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestManager_LogoutIsDurable(t *testing.T) {
	store, path := openStore(t)
	m, err := NewManager(store)
	require.NoError(t, err)
	require.NoError(t, m.Login(&vendor.Session{VendorID: 7, Token: "tok"}))
	require.NoError(t, m.Logout())
	require.NoError(t, store.Close())

	reopened, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	m2, err := NewManager(reopened)
	require.NoError(t, err)
	assert.Equal(t, StateNone, m2.State())
}

func TestManager_RejectsIncompleteSession(t *testing.T) {
	store, _ := openStore(t)
	defer store.Close()
	m, err := NewManager(store)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Login(&vendor.Session{Email: "farm@kisan.in"}), ErrInvalidSession)
	assert.ErrorIs(t, m.Login(nil), ErrInvalidSession)
	assert.Equal(t, StateNone, m.State())
}
