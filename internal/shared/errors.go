package shared

import "errors"

var (
	// ErrNotFound indicates a referenced record does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a uniqueness conflict in the record store.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrStoreUnavailable indicates the record store could not be reached.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrUnauthorized indicates the request carries no authenticated session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing means a state-changing request carried no token, or
	// the session never had one issued.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch means the token is not the session's current one.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserSafeMessage returns a message that can be shown to API clients without
// leaking store internals.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate):
		return err.Error()
	case errors.Is(err, ErrStoreUnavailable):
		return "record store unavailable, try again later"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, ErrUnauthorized):
		return "login required"
	default:
		return "internal error"
	}
}
