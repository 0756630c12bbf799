package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/avelks/donorboard/internal/config"
	"github.com/avelks/donorboard/internal/middleware"
	"github.com/avelks/donorboard/internal/utils"
	"github.com/avelks/donorboard/internal/view"
)

// testEnv wires the handlers against the in-memory fake store with the
// same route table the real router registers.
type testEnv struct {
	e  *echo.Echo
	st *fakeStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := newFakeStore()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer

	cfg := config.Config{BcryptCost: bcrypt.MinCost, SessionTTLMin: 60}
	decoy, err := utils.NewFakeVerifier(cfg.BcryptCost)
	if err != nil {
		t.Fatalf("decoy hash: %v", err)
	}
	authH := NewAuthHandler(cfg, decoy, st, st)
	dashH := NewDashboardHandler(st)
	donH := NewDonationHandler(st, fakeLedger{st}, false)

	e.GET("/", Home)
	e.GET("/login", authH.ShowLogin)
	e.POST("/login", authH.Login)
	e.GET("/register", authH.ShowRegister)
	e.POST("/register", authH.Register)

	auth := e.Group("")
	auth.Use(middleware.SessionAuth(st))
	auth.GET("/dashboard", dashH.Dashboard)
	auth.POST("/donate", donH.Donate)
	auth.GET("/thankyou", dashH.ThankYou)
	auth.GET("/logout", authH.Logout)
	auth.POST("/logout", authH.Logout)

	return &testEnv{e: e, st: st}
}

// postForm submits an urlencoded form, optionally with a session cookie.
func (env *testEnv) postForm(path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("Accept", "text/html")
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// get performs a browser-style GET, optionally with a session cookie.
func (env *testEnv) get(path string, session *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// register signs a user up and returns the session cookie issued with the
// registration response.
func (env *testEnv) register(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := env.postForm("/register", url.Values{"username": {username}, "password": {password}}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("register %q: status %d, want %d", username, rec.Code, http.StatusSeeOther)
	}
	c := sessionCookie(rec)
	if c == nil {
		t.Fatalf("register %q: no session cookie issued", username)
	}
	return c
}

// jsonRequest builds an API-style request (no text/html Accept header).
func jsonRequest(method, path string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Accept", "application/json")
	return req, httptest.NewRecorder()
}

// sessionCookie pulls the session cookie out of a response, nil if absent.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	return nil
}
