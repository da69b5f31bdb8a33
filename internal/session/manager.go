// Package session holds the signed-in vendor on a device. A Manager moves
// through none -> active -> cleared and is passed explicitly to whatever
// needs the caller's identity.
package session

import (
	"errors"
	"sync"

	"kisan-be/internal/apperror"
	"kisan-be/internal/vendor"
)

type State int

const (
	StateNone State = iota
	StateActive
	StateCleared
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCleared:
		return "cleared"
	default:
		return "none"
	}
}

var (
	ErrNoSession      = apperror.NotFound("no vendor session, sign in again")
	ErrInvalidSession = errors.New("session is missing vendor id or token")
)

type Manager struct {
	mu      sync.RWMutex
	store   Store
	state   State
	current *vendor.Session
}

// NewManager restores a stored session if there is one.
func NewManager(store Store) (*Manager, error) {
	m := &Manager{store: store}
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}
	if sess != nil && sess.VendorID != 0 && sess.Token != "" {
		m.current = sess
		m.state = StateActive
	}
	return m, nil
}

func (m *Manager) Login(sess *vendor.Session) error {
	if sess == nil || sess.VendorID == 0 || sess.Token == "" {
		return ErrInvalidSession
	}
	if err := m.store.Save(sess); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sess
	m.current = &cp
	m.state = StateActive
	return nil
}

func (m *Manager) Current() (*vendor.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateActive || m.current == nil {
		return nil, ErrNoSession
	}
	cp := *m.current
	return &cp, nil
}

// Token returns the bearer token of the active session.
func (m *Manager) Token() (string, error) {
	sess, err := m.Current()
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.state = StateCleared
	return nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
