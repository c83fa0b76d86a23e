package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

var (
	ctx       = context.Background()
	startTime = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
)

func makeContacts(n int) []model.Contact {
	out := make([]model.Contact, n)
	for i := range out {
		out[i] = model.Contact{
			ID:        uuid.New(),
			Name:      "visitor",
			Email:     "visitor@example.com",
			Message:   "hello",
			CreatedAt: startTime.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestMemory_Users(t *testing.T) {
	s := NewMemory()
	u := model.User{ID: uuid.New(), Username: "Alice", PasswordHash: "h", CreatedAt: startTime}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.Equal(t, 1, s.userCount())

	got, err := s.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	err = s.CreateUser(ctx, model.User{ID: uuid.New(), Username: "ALICE"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, s.userCount())

	_, err = s.UserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ContactsSorted(t *testing.T) {
	s := NewMemory()
	contacts := makeContacts(3)
	// insert out of order
	for _, i := range []int{2, 0, 1} {
		require.NoError(t, s.AddContact(ctx, contacts[i]))
	}

	all, err := s.Contacts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := range contacts {
		assert.Equal(t, contacts[i].ID, all[i].ID)
	}

	got, err := s.Contact(ctx, contacts[1].ID)
	require.NoError(t, err)
	assert.Equal(t, contacts[1], got)

	_, err = s.Contact(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.AddContact(ctx, contacts[0]), ErrConflict)
}

func TestMemory_ContactsReturnsCopy(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.AddContact(ctx, makeContacts(1)[0]))
	all, _ := s.Contacts(ctx)
	all[0].Name = "changed"
	again, _ := s.Contacts(ctx)
	assert.Equal(t, "visitor", again[0].Name)
}

func TestMemory_ConcurrentRegister(t *testing.T) {
	s := NewMemory()
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.CreateUser(ctx, model.User{ID: uuid.New(), Username: "same"}) == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, s.userCount())
}
