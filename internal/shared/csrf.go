package shared

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	// CSRFSessionKey holds the issued token inside the session record.
	CSRFSessionKey = "csrf_token"
	// CSRFHeader carries the token on JSON calls.
	CSRFHeader = "X-CSRF-Token"
	// CSRFFormField carries the token on form posts.
	CSRFFormField = "csrf_token"
)

const csrfNonceSize = 16

// CSRFManager mints per-session tokens: a random nonce followed by an HMAC of
// the session id and that nonce. Rotating the session id at login therefore
// retires every token handed out before it.
type CSRFManager struct {
	secret []byte
	random io.Reader
}

func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret), random: rand.Reader}
}

// EnsureToken returns the session's token. A new one is minted when none is
// stored or the stored one was bound to an earlier session id.
func (m *CSRFManager) EnsureToken(sess *Session) (string, error) {
	if sess == nil {
		return "", ErrCSRFTokenMissing
	}
	if token := sess.Get(CSRFSessionKey); token != "" && m.boundTo(token, sess.ID) {
		return token, nil
	}

	raw := make([]byte, csrfNonceSize, csrfNonceSize+sha256.Size)
	if _, err := io.ReadFull(m.random, raw); err != nil {
		return "", fmt.Errorf("csrf nonce: %w", err)
	}
	raw = append(raw, m.sign(sess.ID, raw)...)
	token := base64.RawURLEncoding.EncodeToString(raw)
	sess.Set(CSRFSessionKey, token)
	return token, nil
}

// VerifyToken accepts token only if it is the one stored in sess and it is
// still bound to the current session id.
func (m *CSRFManager) VerifyToken(sess *Session, token string) error {
	if sess == nil || token == "" {
		return ErrCSRFTokenMissing
	}
	stored := sess.Get(CSRFSessionKey)
	if stored == "" {
		return ErrCSRFTokenMissing
	}
	if !hmac.Equal([]byte(stored), []byte(token)) || !m.boundTo(token, sess.ID) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

func (m *CSRFManager) sign(sessionID string, nonce []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(sessionID))
	_, _ = mac.Write(nonce)
	return mac.Sum(nil)
}

func (m *CSRFManager) boundTo(token, sessionID string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != csrfNonceSize+sha256.Size {
		return false
	}
	return hmac.Equal(raw[csrfNonceSize:], m.sign(sessionID, raw[:csrfNonceSize]))
}
