package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenKey    = "token"
	UsernameKey = "username"
)

var ErrNoToken = errors.New("no session token")

type Store struct {
	mu       sync.RWMutex
	storage  Storage
	token    string
	username string
}

func NewStore(storage Storage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{storage: storage}
}

// Hydrate loads the persisted session. Missing keys leave the field empty.
func (s *Store) Hydrate(ctx context.Context) error {
	token, _, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	username, _, err := s.storage.Get(ctx, UsernameKey)
	if err != nil {
		return fmt.Errorf("load session username: %w", err)
	}

	s.mu.Lock()
	s.token, s.username = token, username
	s.mu.Unlock()
	return nil
}

// Set replaces the in-memory session and persists the non-empty values. An
// empty value never overwrites what is already stored.
func (s *Store) Set(ctx context.Context, token, username string) error {
	s.mu.Lock()
	s.token, s.username = token, username
	s.mu.Unlock()

	pairs := make(map[string]string, 2)
	if token != "" {
		pairs[TokenKey] = token
	}
	if username != "" {
		pairs[UsernameKey] = username
	}
	if len(pairs) == 0 {
		return nil
	}

	if err := s.storage.Put(ctx, pairs); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.username = "", ""
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, TokenKey, UsernameKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// AuthHeaders returns the JSON content type, plus a bearer authorization
// header when a token is present.
func (s *Store) AuthHeaders() http.Header {
	h := http.Header{}
	h.Set(common.ContentTypeHeader, common.ContentTypeJSON)
	if token := s.Token(); token != "" {
		h.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	return h
}

// Claims is the display subset of the token payload.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the token payload WITHOUT verifying its signature. The
// result is for display only.
func (s *Store) Claims() (*Claims, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	c := &Claims{}
	// Some servers issue numeric subjects, which GetSubject rejects.
	if sub, ok := mc["sub"]; ok && sub != nil {
		c.Subject = fmt.Sprint(sub)
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	return c, nil
}
