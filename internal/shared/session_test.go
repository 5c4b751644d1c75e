package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "salon_session", time.Hour, false), mr
}

func TestSessionRoundTrip(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser("user-1", "admin")

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	assert.True(t, mr.Exists("salon:session:"+sess.ID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "user-1", loaded.User())
	assert.Equal(t, "admin", loaded.Username())
}

func TestAnonymousSessionIsNotPersisted(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	assert.Empty(t, rec.Result().Cookies())
	assert.Empty(t, mr.Keys())
}

func TestUnknownCookieStartsFreshSession(t *testing.T) {
	sm, _ := newTestSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: "forged"})
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, "forged", sess.ID)
	assert.Empty(t, sess.User())
}

func TestDestroyRemovesSession(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser("user-1", "admin")
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), sess))

	sm.Destroy(sess)
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	assert.False(t, mr.Exists("salon:session:"+sess.ID))
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestCSRFTokenLifecycle(t *testing.T) {
	sm, _ := newTestSessionManager(t)
	csrf := NewCSRFManager("secret")

	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	token, err := csrf.EnsureToken(sess)
	require.NoError(t, err)
	again, err := csrf.EnsureToken(sess)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	assert.NoError(t, csrf.VerifyToken(sess, token))
	assert.ErrorIs(t, csrf.VerifyToken(sess, "other"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, csrf.VerifyToken(sess, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, csrf.VerifyToken(nil, token), ErrCSRFTokenMissing)
}

func TestCSRFTokenRetiredBySessionRotation(t *testing.T) {
	sm, _ := newTestSessionManager(t)
	csrf := NewCSRFManager("secret")
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	before, err := csrf.EnsureToken(sess)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NoError(t, csrf.VerifyToken(loaded, before))

	loaded.SetUser("user-1", "admin")
	require.NotEqual(t, sess.ID, loaded.ID)
	assert.ErrorIs(t, csrf.VerifyToken(loaded, before), ErrCSRFTokenMismatch)

	after, err := csrf.EnsureToken(loaded)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
	assert.NoError(t, csrf.VerifyToken(loaded, after))
}

func TestCSRFTokensDifferPerSession(t *testing.T) {
	csrf := NewCSRFManager("secret")
	a := &Session{ID: "a"}
	b := &Session{ID: "b"}

	ta, err := csrf.EnsureToken(a)
	require.NoError(t, err)
	tb, err := csrf.EnsureToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ta, tb)

	b.Set(CSRFSessionKey, ta)
	assert.ErrorIs(t, csrf.VerifyToken(b, ta), ErrCSRFTokenMismatch)
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, UnknownActor, ActorFromContext(context.Background()))
	assert.False(t, IsAuthenticated(context.Background()))

	sess := &Session{ID: "s"}
	sess.SetUser("u1", "reception")
	ctx := ContextWithSession(context.Background(), sess)
	assert.Equal(t, "reception", ActorFromContext(ctx))
	assert.True(t, IsAuthenticated(ctx))
}
