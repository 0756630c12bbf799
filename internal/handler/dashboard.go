package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelks/donorboard/internal/middleware"
	"github.com/avelks/donorboard/internal/repository"
	"github.com/avelks/donorboard/internal/utils"
)

// DashboardHandler serves the variant views behind the session wall.
type DashboardHandler struct {
	Users repository.UserStore
}

func NewDashboardHandler(u repository.UserStore) *DashboardHandler {
	return &DashboardHandler{Users: u}
}

// dashboardPage feeds the two variant templates.
type dashboardPage struct {
	Username     string
	VisitCount   uint64
	TotalDonated uint64
	Error        string
}

// Dashboard increments the visit counter and renders the variant assigned
// to the user at registration.  The stored variant decides the template
// on every render, so repeated visits always see the same bucket.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Count this visit first so the rendered counter includes it.
	if err := h.Users.IncrementVisits(ctx, uid); err != nil {
		// A session pointing at a missing user is an internal consistency
		// failure, not something a client can trigger.
		return renderInternalError(c, err)
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return renderInternalError(c, err)
	}

	tmpl := "dashboard_a.html"
	if u.Variant == utils.VariantB {
		tmpl = "dashboard_b.html"
	}
	return c.Render(http.StatusOK, tmpl, dashboardPage{
		Username:     u.Username,
		VisitCount:   u.VisitCount,
		TotalDonated: u.TotalDonated,
		Error:        c.QueryParam("error"),
	})
}

// ThankYou renders the post-donation confirmation view.
func (h *DashboardHandler) ThankYou(c echo.Context) error {
	return c.Render(http.StatusOK, "thankyou.html", nil)
}
