package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelks/donorboard/internal/middleware"
	"github.com/avelks/donorboard/internal/queue"
	"github.com/avelks/donorboard/internal/repository"
	queue_publisher "github.com/avelks/donorboard/internal/service"
)

// DonationHandler records donations against the authenticated user.
type DonationHandler struct {
	Users     repository.UserStore
	Donations repository.DonationStore

	// PublishEvents gates the RabbitMQ side channel so tests and broker-less
	// deployments skip it entirely.
	PublishEvents bool
}

func NewDonationHandler(u repository.UserStore, d repository.DonationStore, publish bool) *DonationHandler {
	return &DonationHandler{Users: u, Donations: d, PublishEvents: publish}
}

// Donate validates the submitted amount and, when valid, appends a ledger
// row and bumps the user's running total in one transaction.  Invalid
// amounts (empty, non-numeric, zero, negative) go back to the dashboard
// with an inline error and leave no trace in the store.
func (h *DonationHandler) Donate(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	raw := strings.TrimSpace(c.FormValue("amount"))
	amount, err := parseAmount(raw)
	if err != nil {
		return redirectWithError(c, "/dashboard", "Invalid donation amount. Please enter a positive whole number.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	donationID, err := h.Donations.Create(ctx, uid, amount)
	if err != nil {
		return renderInternalError(c, err)
	}

	if h.PublishEvents {
		h.publishRecorded(donationID, uid, amount)
	}
	return c.Redirect(http.StatusSeeOther, "/thankyou")
}

// parseAmount turns the form value into a strictly positive integer or
// returns ErrInvalidAmount.
func parseAmount(raw string) (int64, error) {
	if raw == "" {
		return 0, repository.ErrInvalidAmount
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, repository.ErrInvalidAmount
	}
	return n, nil
}

// publishRecorded emits the donation event off the request path.  The user
// row is re-read for the event payload; any failure here is logged by the
// publisher and never surfaces to the donor.
func (h *DonationHandler) publishRecorded(donationID, userID uint64, amount int64) {
	users := h.Users
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.DonationRecordedEvent{
			DonationID: donationID,
			UserID:     userID,
			Amount:     amount,
			RecordedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if u, err := users.GetByID(ctx, userID); err == nil {
			ev.Username = u.Username
			ev.TotalDonated = u.TotalDonated
			ev.Variant = u.Variant
		}
		_ = queue_publisher.PublishDonationRecorded(ctx, ev)
	}()
}

// redirectWithError sends the browser back with an inline error message.
func redirectWithError(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(msg))
}
