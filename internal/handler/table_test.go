package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func seatBody(reservationID any) string {
	return fmt.Sprintf(`{"data":{"reservation_id":%v}}`, reservationID)
}

func TestTableCreate(t *testing.T) {
	env := newTestEnv(t)
	c, rec := request(http.MethodPost, "/v1/tables", `{"data":{"table_name":"Bar #1","capacity":6}}`)
	require.NoError(t, env.tblHandler.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := dataObj(t, rec)
	assert.Equal(t, "Bar #1", data["table_name"])
	assert.EqualValues(t, 6, data["capacity"])
	assert.Equal(t, false, data["occupied"])
	assert.NotContains(t, data, "reservation_id")
}

func TestTableCreateRejections(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"short name", `{"data":{"table_name":"A","capacity":6}}`, "table_name must be at least 2 characters long"},
		{"zero capacity", `{"data":{"table_name":"Bar #1","capacity":0}}`, `field "capacity" required`},
		{"string capacity", `{"data":{"table_name":"Bar #1","capacity":"six"}}`, "capacity must be a number, got string"},
		{"no data object", `{"table_name":"Bar #1"}`, "request body must include a data object"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := request(http.MethodPost, "/v1/tables", tc.body)
			require.NoError(t, env.tblHandler.Create(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.wantMsg, errBody(t, rec, http.StatusBadRequest))
		})
	}
}

func TestTableListOrderedByName(t *testing.T) {
	env := newTestEnv(t)
	env.seedTable(t, "Patio 3", 4)
	env.seedTable(t, "Bar #1", 2)

	c, rec := request(http.MethodGet, "/v1/tables", "")
	require.NoError(t, env.tblHandler.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	items := dataList(t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, "Bar #1", items[0].(map[string]any)["table_name"])
	assert.Equal(t, "Patio 3", items[1].(map[string]any)["table_name"])
}

func TestTableSeat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res := env.seedReservation(t, model.StatusBooked)
	tbl := env.seedTable(t, "Bar #1", 4)

	c, rec := request(http.MethodPut, "/x", seatBody(res.ID))
	require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataObj(t, rec)
	assert.Equal(t, true, data["occupied"])
	assert.EqualValues(t, res.ID, data["reservation_id"])

	storedTable, err := env.tables.GetByID(ctx, tbl.ID)
	require.NoError(t, err)
	require.NotNil(t, storedTable.ReservationID)
	assert.Equal(t, res.ID, *storedTable.ReservationID)

	storedRes, err := env.reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSeated, storedRes.Status)
}

func TestTableSeatRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("missing table", func(t *testing.T) {
		res := env.seedReservation(t, model.StatusBooked)
		c, rec := request(http.MethodPut, "/x", seatBody(res.ID))
		require.NoError(t, env.tblHandler.Seat(withID(c, "77")))
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "table 77 does not exist", errBody(t, rec, http.StatusNotFound))
	})

	t.Run("missing reservation", func(t *testing.T) {
		tbl := env.seedTable(t, "Bar #2", 4)
		c, rec := request(http.MethodPut, "/x", seatBody(999))
		require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "reservation 999 does not exist", errBody(t, rec, http.StatusNotFound))
	})

	t.Run("occupied table", func(t *testing.T) {
		first := env.seedReservation(t, model.StatusBooked)
		second := env.seedReservation(t, model.StatusBooked)
		tbl := env.seedTable(t, "Bar #3", 4)
		c, _ := request(http.MethodPut, "/x", seatBody(first.ID))
		require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))

		c, rec := request(http.MethodPut, "/x", seatBody(second.ID))
		require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "table is currently occupied", errBody(t, rec, http.StatusBadRequest))
	})

	t.Run("reservation not booked", func(t *testing.T) {
		for _, status := range []string{model.StatusSeated, model.StatusFinished, model.StatusCancelled} {
			res := env.seedReservation(t, status)
			tbl := env.seedTable(t, "Bar #4", 4)
			c, rec := request(http.MethodPut, "/x", seatBody(res.ID))
			require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))
			require.Equal(t, http.StatusBadRequest, rec.Code, status)
			assert.Equal(t, "reservation is already seated", errBody(t, rec, http.StatusBadRequest))
		}
	})

	t.Run("party too big", func(t *testing.T) {
		res := &model.Reservation{
			FirstName: "Big", LastName: "Party", MobileNumber: "555-0199",
			ReservationDate: "2026-09-03", ReservationTime: "19:00:00",
			People: 6, Status: model.StatusBooked,
		}
		require.NoError(t, env.reservations.Create(ctx, res))
		tbl := env.seedTable(t, "Deuce 1", 2)

		c, rec := request(http.MethodPut, "/x", seatBody(res.ID))
		require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			fmt.Sprintf(`table "Deuce 1" seats 2 and cannot fit 6 people (reservation %d)`, res.ID),
			errBody(t, rec, http.StatusBadRequest))

		// The reservation stays booked and the table stays free.
		storedRes, err := env.reservations.GetByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusBooked, storedRes.Status)
		storedTbl, err := env.tables.GetByID(ctx, tbl.ID)
		require.NoError(t, err)
		assert.False(t, storedTbl.Occupied)
	})

	t.Run("bad reservation id", func(t *testing.T) {
		tbl := env.seedTable(t, "Bar #5", 4)
		c, rec := request(http.MethodPut, "/x", seatBody(`"one"`))
		require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "reservation_id must be a positive integer or null", errBody(t, rec, http.StatusBadRequest))
	})
}

func TestTableSeatDetach(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res := env.seedReservation(t, model.StatusBooked)
	tbl := env.seedTable(t, "Bar #1", 4)

	c, _ := request(http.MethodPut, "/x", seatBody(res.ID))
	require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))

	// Null reservation id detaches the table; the reservation keeps its
	// current status so staff can re-seat the party elsewhere.
	c, rec := request(http.MethodPut, "/x", seatBody("null"))
	require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataObj(t, rec)
	assert.Equal(t, false, data["occupied"])
	assert.NotContains(t, data, "reservation_id")

	storedRes, err := env.reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSeated, storedRes.Status)

	t.Run("detach missing table", func(t *testing.T) {
		c, rec := request(http.MethodPut, "/x", seatBody("null"))
		require.NoError(t, env.tblHandler.Seat(withID(c, "55")))
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "table 55 does not exist", errBody(t, rec, http.StatusNotFound))
	})
}

func TestTableRelease(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res := env.seedReservation(t, model.StatusBooked)
	tbl := env.seedTable(t, "Bar #1", 4)

	c, _ := request(http.MethodPut, "/x", seatBody(res.ID))
	require.NoError(t, env.tblHandler.Seat(withID(c, fmt.Sprint(tbl.ID))))

	c, rec := request(http.MethodDelete, "/x", "")
	require.NoError(t, env.tblHandler.Release(withID(c, fmt.Sprint(tbl.ID))))
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	storedTbl, err := env.tables.GetByID(ctx, tbl.ID)
	require.NoError(t, err)
	assert.False(t, storedTbl.Occupied)
	assert.Nil(t, storedTbl.ReservationID)

	storedRes, err := env.reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFinished, storedRes.Status)

	t.Run("second release rejected", func(t *testing.T) {
		c, rec := request(http.MethodDelete, "/x", "")
		require.NoError(t, env.tblHandler.Release(withID(c, fmt.Sprint(tbl.ID))))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "table is not occupied, cannot be unseated", errBody(t, rec, http.StatusBadRequest))
	})

	t.Run("missing table", func(t *testing.T) {
		c, rec := request(http.MethodDelete, "/x", "")
		require.NoError(t, env.tblHandler.Release(withID(c, "404")))
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "table 404 does not exist", errBody(t, rec, http.StatusNotFound))
	})
}

func TestTableReleaseFreeTable(t *testing.T) {
	env := newTestEnv(t)
	tbl := env.seedTable(t, "Bar #1", 4)

	c, rec := request(http.MethodDelete, "/x", "")
	require.NoError(t, env.tblHandler.Release(withID(c, fmt.Sprint(tbl.ID))))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "table is not occupied, cannot be unseated", errBody(t, rec, http.StatusBadRequest))
}
