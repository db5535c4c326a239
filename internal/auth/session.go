package auth

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownSession is returned when a valid token names a session this
// process no longer holds, for example after a restart.
var ErrUnknownSession = errors.New("unknown session")

// ErrRegistryFull is returned when an unprivileged session cannot be
// registered because the registry is at its limit.
var ErrRegistryFull = errors.New("session registry full")

// DefaultSessionLimit caps live sessions when no limit is configured.
const DefaultSessionLimit = 10000

// Session is the per-caller context. It starts unprivileged and can only be
// promoted, never demoted.
type Session struct {
	ID string

	token      string
	expiresAt  time.Time
	privileged atomic.Bool
}

// NewSession returns an unregistered, unprivileged session.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Privileged reports whether the session has passed the credential gate.
func (s *Session) Privileged() bool {
	return s != nil && s.privileged.Load()
}

// Token returns the bearer token for a registered session, or "" otherwise.
func (s *Session) Token() string { return s.token }

// ExpiresAt is the end of the session's lifetime; zero when unregistered.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Registry holds live sessions so a bearer token maps back to the same
// privilege state on every request.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	tokens   *TokenManager
	limit    int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSessionLimit caps how many sessions the registry holds. Privileged
// sessions are always admitted; the cap only turns away unprivileged ones.
func WithSessionLimit(n int) RegistryOption {
	return func(r *Registry) {
		if n >= 0 {
			r.limit = n
		}
	}
}

// NewRegistry creates an empty registry that signs tokens with tokens.
func NewRegistry(tokens *TokenManager, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		tokens:   tokens,
		limit:    DefaultSessionLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open creates and registers a fresh session.
func (r *Registry) Open() (*Session, error) {
	s := NewSession()
	if err := r.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Register issues a token for s and makes it resolvable. Registering an
// already registered session is a no-op. Unprivileged sessions get
// ErrRegistryFull once the limit is reached.
func (r *Registry) Register(s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.token != "" {
		return nil
	}
	r.pruneLocked()
	if !s.Privileged() && len(r.sessions) >= r.limit {
		return ErrRegistryFull
	}
	token, expiresAt, err := r.tokens.Generate(s.ID)
	if err != nil {
		return err
	}
	s.token = token
	s.expiresAt = expiresAt
	r.sessions[s.ID] = s
	return nil
}

// Resolve returns the session named by a bearer token.
func (r *Registry) Resolve(token string) (*Session, error) {
	id, err := r.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) pruneLocked() {
	now := r.tokens.now()
	for id, s := range r.sessions {
		if !now.Before(s.expiresAt) {
			delete(r.sessions, id)
		}
	}
}
