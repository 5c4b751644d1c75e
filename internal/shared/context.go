package shared

import "context"

// UnknownActor is recorded as created_by when no signed-in user is present.
const UnknownActor = "Unknown"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// IsAuthenticated reports whether the request context carries a signed-in session.
func IsAuthenticated(ctx context.Context) bool {
	sess := SessionFromContext(ctx)
	return sess != nil && sess.User() != ""
}

// ActorFromContext returns the username of the signed-in user, or UnknownActor.
func ActorFromContext(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil && sess.Username() != "" {
		return sess.Username()
	}
	return UnknownActor
}
