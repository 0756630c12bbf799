package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"  // context with timeout bounds the session lookup
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming
    "time"     // timeout duration for DB calls

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/avelks/donorboard/internal/repository" // session store interface
    "github.com/avelks/donorboard/internal/utils"      // token hashing helper
)

// SessionCookie is the name of the browser cookie that carries the opaque
// session token.
const SessionCookie = "session"

// Context keys populated by SessionAuth for downstream handlers.
const (
    CtxUserID      = "user_id"      // uint64 id of the authenticated user
    CtxSessionHash = "session_hash" // hash of the presented token, used by logout
)

// SessionAuth returns an Echo middleware that resolves the opaque session
// token to a user identity and injects it into the request context.  The
// token is taken from the session cookie; an Authorization Bearer header
// is accepted as a fallback for non-browser clients.  Every protected
// route goes through this resolution explicitly; there is no ambient
// current-user state anywhere else.
//
// On failure, browser requests are redirected to the login page and API
// style requests receive a 401 JSON body.
func SessionAuth(sessions repository.SessionStore) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := tokenFromRequest(c)
            if raw == "" {
                return rejectUnauthenticated(c)
            }
            // Only the hash ever reaches the store; a raw token is never
            // persisted or logged.
            hash := utils.HashSessionRaw(raw)

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            userID, err := sessions.Resolve(ctx, hash)
            if err != nil {
                // Unknown, expired and revoked tokens all land here; the
                // client cannot tell which it was.
                return rejectUnauthenticated(c)
            }

            c.Set(CtxUserID, userID)
            c.Set(CtxSessionHash, hash)
            return next(c)
        }
    }
}

// tokenFromRequest extracts the raw session token from the cookie or, when
// absent, from an Authorization: Bearer header.
func tokenFromRequest(c echo.Context) string {
    if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
        return cookie.Value
    }
    auth := c.Request().Header.Get("Authorization")
    if strings.HasPrefix(auth, "Bearer ") {
        return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    }
    return ""
}

// rejectUnauthenticated answers a failed session check.  Browsers are sent
// back to the login form; everything else gets a JSON 401.
func rejectUnauthenticated(c echo.Context) error {
    if wantsHTML(c) {
        return c.Redirect(http.StatusSeeOther, "/login")
    }
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
}

// wantsHTML reports whether the client negotiated an HTML response.
func wantsHTML(c echo.Context) bool {
    return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}

// UserID reads the authenticated user id set by SessionAuth.  The second
// return is false when the middleware did not run, which on a protected
// route is a programming error.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(CtxUserID).(uint64)
    return id, ok
}

// SessionHash reads the hash of the presented token set by SessionAuth.
func SessionHash(c echo.Context) (string, bool) {
    h, ok := c.Get(CtxSessionHash).(string)
    return h, ok
}
