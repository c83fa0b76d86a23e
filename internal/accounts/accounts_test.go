package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/sumesh-12/energy-demand-prediction/internal/store"
)

var now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(store.NewMemory(), Config{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return now },
	}, zaptest.NewLogger(t))
}

func TestRegisterAndLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "  alice ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.Equal(t, now, u.CreatedAt)

	_, err = s.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	token, logged, err := s.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestLogin_Failures(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, "bob", "right")
	require.NoError(t, err)

	_, _, err = s.Login(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, "nobody", "right")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_Rejects(t *testing.T) {
	s := newService(t)
	_, err := s.Register(context.Background(), "carol", "pw")
	require.NoError(t, err)
	token, _, err := s.Login(context.Background(), "carol", "pw")
	require.NoError(t, err)

	other := New(store.NewMemory(), Config{JWTSecret: "different"}, nil)
	_, err = other.ParseToken(token)
	assert.Error(t, err)

	later := New(store.NewMemory(), Config{
		JWTSecret: "test-secret",
		Now:       func() time.Time { return now.Add(2 * time.Hour) },
	}, nil)
	_, err = later.ParseToken(token)
	assert.Error(t, err, "expired token")

	_, err = s.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestRegister_Validation(t *testing.T) {
	s := newService(t)
	tests := []struct {
		name, username, password, field string
	}{
		{"empty username", "", "pw", "username"},
		{"blank username", "   ", "pw", "username"},
		{"empty password", "dave", "", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.username, tt.password)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSubmitContact(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	c, err := s.SubmitContact(ctx, "Eve", "eve@example.com", "Forecast looks great")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)

	got, err := s.Contact(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = s.Contact(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	tests := []struct {
		name, cname, email, message, field string
	}{
		{"missing name", "", "a@b.c", "m", "name"},
		{"missing email", "n", "", "m", "email"},
		{"bad email", "n", "not-an-email", "m", "email"},
		{"missing message", "n", "a@b.c", " ", "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SubmitContact(ctx, tt.cname, tt.email, tt.message)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}
