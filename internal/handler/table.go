package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/validate"
)

// TableHandler serves the dining-table resource: the floor plan
// listing, table creation, and the seat/release operations that pair a
// table with a reservation.  Seat and release mutate the table and the
// reservation together in one transaction so the floor plan and the
// book can never disagree.
type TableHandler struct {
	Tables       *repository.TableRepo
	Reservations *repository.ReservationRepo
	// Publish sends a seating event to the queue after a successful
	// seat or release.  Nil disables event publishing.
	Publish func(ctx context.Context, event queue.SeatingEvent) error
}

// NewTableHandler constructs a TableHandler.  Both repos must be
// non-nil; publish may be nil.
func NewTableHandler(tables *repository.TableRepo, reservations *repository.ReservationRepo, publish func(ctx context.Context, event queue.SeatingEvent) error) *TableHandler {
	if tables == nil || reservations == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables, Reservations: reservations, Publish: publish}
}

// List handles GET /v1/tables and returns the floor plan ordered by
// table name.
func (h *TableHandler) List(c echo.Context) error {
	items, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return internalError(c, "failed to load tables")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// Create handles POST /v1/tables.
func (h *TableHandler) Create(c echo.Context) error {
	data, err := bindData(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	table, err := validate.Table(data)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Tables.Create(c.Request().Context(), table); err != nil {
		return internalError(c, "failed to create table")
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": table})
}

// Seat handles PUT /v1/tables/:id/seat.  With a reservation id in the
// body it seats that party: the table must be free, the reservation
// must be booked, and the party must fit the table's capacity.  A null
// or zero reservation id detaches the table without touching any
// reservation, which lets staff correct a mis-assignment.
func (h *TableHandler) Seat(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid table id")
	}
	data, err := bindData(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	resID, ok := reservationIDField(data["reservation_id"])
	if !ok {
		return badRequest(c, "reservation_id must be a positive integer or null")
	}
	ctx := c.Request().Context()
	if resID == 0 {
		return h.detach(c, id)
	}

	tx, err := h.Tables.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	table, err := h.Tables.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return notFound(c, fmt.Sprintf("table %d does not exist", id))
		}
		return internalError(c, "failed to fetch table")
	}
	res, err := h.Reservations.GetByIDTx(ctx, tx, resID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return notFound(c, fmt.Sprintf("reservation %d does not exist", resID))
		}
		return internalError(c, "failed to fetch reservation")
	}
	if table.Occupied {
		return badRequest(c, repository.ErrTableOccupied.Error())
	}
	if res.Status != model.StatusBooked {
		return badRequest(c, repository.ErrReservationSeated.Error())
	}
	if table.Capacity < res.People {
		return badRequest(c, fmt.Sprintf("table %q seats %d and cannot fit %d people (reservation %d)", table.TableName, table.Capacity, res.People, res.ID))
	}

	if err := h.Tables.SeatTx(ctx, tx, id, resID); err != nil {
		if errors.Is(err, repository.ErrTableOccupied) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "failed to seat table")
	}
	applied, err := h.Reservations.UpdateStatusFromTx(ctx, tx, resID, model.StatusBooked, model.StatusSeated)
	if err != nil {
		return internalError(c, "failed to update reservation status")
	}
	if !applied {
		return badRequest(c, repository.ErrReservationSeated.Error())
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "failed to commit transaction")
	}
	committed = true

	table.Occupied = true
	table.ReservationID = &res.ID
	h.publishEvent(queue.SeatingEvent{
		Action:          queue.ActionSeated,
		TableID:         table.ID,
		TableName:       table.TableName,
		Capacity:        table.Capacity,
		ReservationID:   res.ID,
		People:          res.People,
		ReservationDate: res.ReservationDate,
		ReservationTime: res.ReservationTime,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// Release handles DELETE /v1/tables/:id/seat.  The table is freed and
// the reservation it held, if still active, is finished in the same
// transaction.
func (h *TableHandler) Release(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid table id")
	}
	ctx := c.Request().Context()

	tx, err := h.Tables.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "failed to start transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	table, err := h.Tables.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return notFound(c, fmt.Sprintf("table %d does not exist", id))
		}
		return internalError(c, "failed to fetch table")
	}
	if !table.Occupied {
		return badRequest(c, repository.ErrTableNotOccupied.Error())
	}
	if err := h.Tables.ReleaseTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrTableNotOccupied) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "failed to release table")
	}
	if table.ReservationID != nil {
		if err := h.Reservations.FinishActiveTx(ctx, tx, *table.ReservationID); err != nil {
			return internalError(c, "failed to finish reservation")
		}
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "failed to commit transaction")
	}
	committed = true

	event := queue.SeatingEvent{
		Action:     queue.ActionReleased,
		TableID:    table.ID,
		TableName:  table.TableName,
		Capacity:   table.Capacity,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if table.ReservationID != nil {
		event.ReservationID = *table.ReservationID
	}
	h.publishEvent(event)
	return c.NoContent(http.StatusNoContent)
}

// detach clears a table's assignment without changing the reservation,
// used when staff seated the wrong party at a table.
func (h *TableHandler) detach(c echo.Context, id uint64) error {
	ctx := c.Request().Context()
	if _, err := h.Tables.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return notFound(c, fmt.Sprintf("table %d does not exist", id))
		}
		return internalError(c, "failed to fetch table")
	}
	if err := h.Tables.Clear(ctx, id); err != nil {
		return internalError(c, "failed to clear table")
	}
	table, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		return internalError(c, "failed to fetch table")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// publishEvent fires the seating event off the request path.  Delivery
// failures are logged by the publisher; the HTTP response never waits
// on the broker.
func (h *TableHandler) publishEvent(event queue.SeatingEvent) {
	if h.Publish == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Publish(ctx, event); err != nil {
			log.Printf("⚠️ seating event not published: %v", err)
		}
	}()
}

// reservationIDField reads the reservation_id body field.  Absent and
// null both mean detach (0).  JSON numbers arrive as float64.
func reservationIDField(v any) (uint64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}
