package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // sentinel for missing rows
    "errors"       // errors.Is for sentinel matching
    "net/http"     // HTTP status codes and cookie type
    "strings"      // form value trimming
    "time"         // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/avelks/donorboard/internal/config"     // app configuration
    "github.com/avelks/donorboard/internal/middleware" // session context helpers
    "github.com/avelks/donorboard/internal/model"      // user record
    "github.com/avelks/donorboard/internal/repository" // store interfaces and sentinels
    "github.com/avelks/donorboard/internal/utils"      // hashing, tokens, variant pick
)

// AuthHandler bundles dependencies for the register/login/logout workflow.
type AuthHandler struct {
	Cfg      config.Config
	Decoy    utils.FakeVerifier
	Users    repository.UserStore
	Sessions repository.SessionStore
}

func NewAuthHandler(cfg config.Config, decoy utils.FakeVerifier, u repository.UserStore, s repository.SessionStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Decoy: decoy, Users: u, Sessions: s}
}

// formPage is the data shape shared by the login and register templates.
type formPage struct {
	Error string
}

// Home redirects the root path to the login form.
func Home(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", formPage{Error: c.QueryParam("error")})
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", formPage{Error: c.QueryParam("error")})
}

// Login verifies credentials and starts a session.  Unknown usernames and
// wrong passwords are indistinguishable from the outside: both re-render
// the form with the same error.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Render(http.StatusBadRequest, "login.html", formPage{Error: "Username and password are required."})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.html", formPage{Error: "Invalid username or password. Please try again."})
		}
		return renderInternalError(c, err)
	}

	if err := h.startSession(ctx, c, u.ID); err != nil {
		return renderInternalError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// authenticate resolves a credential pair to a user.  Unknown usernames
// and wrong passwords both come back as ErrInvalidCredentials, and the
// unknown-username path still burns a bcrypt comparison so the two
// failures take comparable time.
func (h *AuthHandler) authenticate(ctx context.Context, username, password string) (model.User, error) {
	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.Decoy.Verify(password)
			return model.User{}, repository.ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, repository.ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a user and logs them straight in.  The dashboard
// variant is drawn once here and never re-randomized.
func (h *AuthHandler) Register(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Render(http.StatusBadRequest, "register.html", formPage{Error: "Username and password are required."})
	}

	variant, err := utils.PickVariant()
	if err != nil {
		return renderInternalError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, username, password, variant, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.Render(http.StatusConflict, "register.html", formPage{Error: "That username is taken. Please choose a different one."})
		}
		return renderInternalError(c, err)
	}

	if err := h.startSession(ctx, c, uid); err != nil {
		return renderInternalError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout revokes the presented session and clears the cookie (protected).
func (h *AuthHandler) Logout(c echo.Context) error {
	hash, ok := middleware.SessionHash(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.Revoke(ctx, hash); err != nil {
		return renderInternalError(c, err)
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// startSession issues a fresh opaque token, stores only its hash, and
// hands the raw value to the browser in an HttpOnly cookie.
func (h *AuthHandler) startSession(ctx context.Context, c echo.Context, userID uint64) error {
	tok, err := utils.NewSessionToken(h.Cfg.SessionTTLMin)
	if err != nil {
		return err
	}
	if err := h.Sessions.Store(ctx, userID, utils.HashSessionRaw(tok.Raw), tok.Exp); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Raw,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// renderInternalError logs the underlying cause and shows the generic
// failure page.  Internal detail never reaches the client.
func renderInternalError(c echo.Context, err error) error {
	c.Logger().Errorf("internal error: %v", err)
	return c.Render(http.StatusInternalServerError, "error.html", nil)
}
