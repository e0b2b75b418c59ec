package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/validate"
)

// ReservationHandler serves the reservation resource: listing and
// searching the book, creating reservations, and driving the status
// lifecycle.  Status changes run inside a transaction with a
// compare-and-set on the observed status, so a concurrent update is
// reported as the same business error a stale client would get.
type ReservationHandler struct {
	Repo  *repository.ReservationRepo // reservation persistence
	Hours config.HoursConfig          // operating-hours rules for creation
	Now   func() time.Time            // clock, swappable in tests
}

// NewReservationHandler constructs a ReservationHandler.  The repo must
// be non-nil; a nil clock defaults to time.Now.
func NewReservationHandler(repo *repository.ReservationRepo, hours config.HoursConfig, now func() time.Time) *ReservationHandler {
	if repo == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	if now == nil {
		now = time.Now
	}
	return &ReservationHandler{Repo: repo, Hours: hours, Now: now}
}

// List handles GET /v1/reservations.  With ?date=YYYY-MM-DD it returns
// that service date's reservations ordered by time, excluding finished
// ones.  With ?mobile_number=... it searches by phone fragment, newest
// date first.  With neither it returns the whole book.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		items []model.Reservation
		err   error
	)
	switch {
	case c.QueryParam("date") != "":
		items, err = h.Repo.ListByDate(ctx, c.QueryParam("date"))
	case c.QueryParam("mobile_number") != "":
		items, err = h.Repo.SearchByPhone(ctx, c.QueryParam("mobile_number"))
	default:
		items, err = h.Repo.ListAll(ctx)
	}
	if err != nil {
		return internalError(c, "failed to load reservations")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Create handles POST /v1/reservations.  The payload is validated, the
// operating-hours rules are applied, and the reservation is stored with
// status booked.
func (h *ReservationHandler) Create(c echo.Context) error {
	data, err := bindData(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	res, err := validate.Reservation(data)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := validate.Hours(res, h.Hours, h.Now()); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Repo.Create(c.Request().Context(), res); err != nil {
		return internalError(c, "failed to create reservation")
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": res})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	res, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return notFound(c, fmt.Sprintf("reservation %d does not exist", id))
		}
		return internalError(c, "failed to fetch reservation")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// UpdateStatus handles PUT /v1/reservations/:id/status.  The direct
// API accepts booked, seated and finished; cancellation goes through
// Cancel so that both paths funnel into the same lifecycle guard.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	data, err := bindData(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	status, _ := data["status"].(string)
	switch status {
	case model.StatusBooked, model.StatusSeated, model.StatusFinished:
	case model.StatusCancelled:
		return badRequest(c, `status "cancelled" must be set through the cancel operation`)
	default:
		return badRequest(c, fmt.Sprintf("status %q is invalid", status))
	}
	return h.applyStatus(c, id, status)
}

// Cancel handles PUT /v1/reservations/:id/cancel.  Cancellation is only
// reachable from booked; the shared guard enforces that.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	return h.applyStatus(c, id, model.StatusCancelled)
}

// applyStatus is the single lifecycle guard.  It rejects updates to
// terminal reservations and transitions outside the state machine,
// then applies the change with a compare-and-set on the status that
// was read.  Losing that race surfaces the terminal-state error, never
// a silent overwrite.
func (h *ReservationHandler) applyStatus(c echo.Context, id uint64, newStatus string) error {
	ctx := c.Request().Context()
	tx, err := h.Repo.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Repo.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return notFound(c, fmt.Sprintf("reservation %d does not exist", id))
		}
		return internalError(c, "failed to fetch reservation")
	}
	if model.IsTerminal(res.Status) {
		return badRequest(c, repository.ErrTerminalStatus.Error())
	}
	if !model.CanTransition(res.Status, newStatus) {
		return badRequest(c, fmt.Sprintf("cannot transition reservation from %q to %q", res.Status, newStatus))
	}

	applied, err := h.Repo.UpdateStatusFromTx(ctx, tx, id, res.Status, newStatus)
	if err != nil {
		return internalError(c, "failed to update reservation status")
	}
	if !applied {
		// A concurrent update moved the reservation first.
		return badRequest(c, repository.ErrTerminalStatus.Error())
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "failed to commit transaction")
	}
	committed = true

	res.Status = newStatus
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}
