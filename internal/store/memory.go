package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// Memory holds accounts and contact messages in memory.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]model.User // keyed by lower-cased username
	contacts []model.Contact       // sorted by CreatedAt
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]model.User)}
}

// CreateUser adds u. Usernames are unique ignoring case.
func (m *Memory) CreateUser(_ context.Context, u model.User) error {
	key := strings.ToLower(u.Username)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[key]; ok {
		return ErrConflict
	}
	m.users[key] = u
	return nil
}

// UserByUsername looks a user up ignoring case.
func (m *Memory) UserByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[strings.ToLower(username)]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// userCount returns the number of registered users.
func (m *Memory) userCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// AddContact stores c, keeping contacts sorted by creation time.
func (m *Memory) AddContact(_ context.Context, c model.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.contacts {
		if existing.ID == c.ID {
			return ErrConflict
		}
	}
	m.contacts = append(m.contacts, c)
	sort.SliceStable(m.contacts, func(i, j int) bool {
		return m.contacts[i].CreatedAt.Before(m.contacts[j].CreatedAt)
	})
	return nil
}

// Contact returns the message with the given id.
func (m *Memory) Contact(_ context.Context, id uuid.UUID) (model.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Contact{}, ErrNotFound
}

// Contacts returns a copy of all messages, oldest first.
func (m *Memory) Contacts(_ context.Context) ([]model.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Contact, len(m.contacts))
	copy(out, m.contacts)
	return out, nil
}
