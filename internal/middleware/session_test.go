package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelks/donorboard/internal/repository"
	"github.com/avelks/donorboard/internal/utils"
)

// stubSessions resolves a fixed set of token hashes. A zero expiry means
// the session never expires.
type stubSessions struct {
	byHash map[string]stubSession
}

type stubSession struct {
	userID uint64
	exp    time.Time
}

func (s *stubSessions) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	s.byHash[tokenHash] = stubSession{userID: userID, exp: exp}
	return nil
}

func (s *stubSessions) Resolve(ctx context.Context, tokenHash string) (uint64, error) {
	sess, ok := s.byHash[tokenHash]
	if !ok {
		return 0, repository.ErrSessionInvalid
	}
	if !sess.exp.IsZero() && time.Now().UTC().After(sess.exp) {
		return 0, repository.ErrSessionInvalid
	}
	return sess.userID, nil
}

func (s *stubSessions) Revoke(ctx context.Context, tokenHash string) error {
	delete(s.byHash, tokenHash)
	return nil
}

func newProtectedEcho(sessions repository.SessionStore) *echo.Echo {
	e := echo.New()
	g := e.Group("")
	g.Use(SessionAuth(sessions))
	g.GET("/protected", func(c echo.Context) error {
		id, ok := UserID(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": id})
	})
	return e
}

func TestSessionAuthResolvesCookie(t *testing.T) {
	stub := &stubSessions{byHash: map[string]stubSession{}}
	raw := "deadbeefcafe"
	require.NoError(t, stub.Store(context.Background(), 7, utils.HashSessionRaw(raw), time.Time{}))
	e := newProtectedEcho(stub)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: raw})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
}

func TestSessionAuthBearerFallback(t *testing.T) {
	stub := &stubSessions{byHash: map[string]stubSession{}}
	raw := "deadbeefcafe"
	require.NoError(t, stub.Store(context.Background(), 9, utils.HashSessionRaw(raw), time.Time{}))
	e := newProtectedEcho(stub)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":9`)
}

func TestSessionAuthRejectsMissingToken(t *testing.T) {
	e := newProtectedEcho(&stubSessions{byHash: map[string]stubSession{}})

	// Browser clients are redirected to the login form.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// API clients get a 401.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthRejectsExpiredToken(t *testing.T) {
	stub := &stubSessions{byHash: map[string]stubSession{}}
	raw := "deadbeefcafe"
	require.NoError(t, stub.Store(context.Background(), 7, utils.HashSessionRaw(raw), time.Now().UTC().Add(-time.Minute)))
	e := newProtectedEcho(stub)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: raw})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSessionAuthRejectsUnknownToken(t *testing.T) {
	e := newProtectedEcho(&stubSessions{byHash: map[string]stubSession{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-real-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
