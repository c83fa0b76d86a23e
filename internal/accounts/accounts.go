// Package accounts registers users, issues login tokens and records contact
// messages. The forecast pipeline does not depend on it.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
	"github.com/sumesh-12/energy-demand-prediction/internal/store"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Claims is the payload of a login token.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Config configures a Service.
type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Now        func() time.Time
}

// Service implements the account operations.
type Service struct {
	store  store.Store
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
	log    *zap.Logger
}

func New(s store.Store, cfg Config, log *zap.Logger) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  s,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		cost:   cfg.BcryptCost,
		now:    cfg.Now,
		log:    log,
	}
}

// Register creates an account. A taken username yields ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.User{}, &ValidationError{Field: "username", Reason: "required"}
	}
	if password == "" {
		return model.User{}, &ValidationError{Field: "password", Reason: "required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("username", u.Username))
	return u, nil
}

// Login checks the password and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, model.User, error) {
	u, err := s.store.UserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return "", model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", model.User{}, ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", model.User{}, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

// ParseToken validates a token issued by Login.
func (s *Service) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

// SubmitContact records a contact message.
func (s *Service) SubmitContact(ctx context.Context, name, email, message string) (model.Contact, error) {
	name, email, message = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(message)
	switch {
	case name == "":
		return model.Contact{}, &ValidationError{Field: "name", Reason: "required"}
	case email == "":
		return model.Contact{}, &ValidationError{Field: "email", Reason: "required"}
	case message == "":
		return model.Contact{}, &ValidationError{Field: "message", Reason: "required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Contact{}, &ValidationError{Field: "email", Reason: "not a valid address"}
	}

	c := model.Contact{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.AddContact(ctx, c); err != nil {
		return model.Contact{}, err
	}
	s.log.Info("contact message stored", zap.String("contact_id", c.ID.String()))
	return c, nil
}

// Contact returns a stored contact message.
func (s *Service) Contact(ctx context.Context, id uuid.UUID) (model.Contact, error) {
	c, err := s.store.Contact(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Contact{}, ErrNotFound
	}
	return c, err
}

// Contacts lists stored contact messages, oldest first.
func (s *Service) Contacts(ctx context.Context) ([]model.Contact, error) {
	return s.store.Contacts(ctx)
}
