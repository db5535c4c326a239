package auth

import "context"

type sessionKey struct{}

// WithSession attaches the caller's session to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the caller's session. Without one attached it returns
// a fresh anonymous session, never nil.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok && s != nil {
		return s
	}
	return NewSession()
}
