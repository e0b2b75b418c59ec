package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// The handler tests run against an in-memory SQLite database.  The
// repositories stick to portable SQL so the same queries run on MySQL
// in production and SQLite under test.
const testSchema = `
CREATE TABLE reservations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	mobile_number TEXT NOT NULL,
	reservation_date TEXT NOT NULL,
	reservation_time TEXT NOT NULL,
	people INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'booked'
);
CREATE TABLE tables (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	table_name TEXT NOT NULL,
	capacity INTEGER NOT NULL,
	occupied BOOLEAN NOT NULL DEFAULT FALSE,
	reservation_id INTEGER
);`

// testNow is a Wednesday at noon; the default hours keep Tuesdays
// closed, so reservations on 2026-09-03 (Thursday) are always valid.
var testNow = time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db           *sql.DB
	reservations *repository.ReservationRepo
	tables       *repository.TableRepo
	resHandler   *ReservationHandler
	tblHandler   *TableHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A second connection would see a different empty in-memory DB.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	resRepo := repository.NewReservationRepo(db)
	tblRepo := repository.NewTableRepo(db)
	hours := config.HoursConfig{
		ClosedDays:  map[time.Weekday]string{time.Tuesday: "Tuesday"},
		Open:        10*60 + 30,
		LastSeating: 21*60 + 30,
	}
	return &testEnv{
		db:           db,
		reservations: resRepo,
		tables:       tblRepo,
		resHandler:   NewReservationHandler(resRepo, hours, func() time.Time { return testNow }),
		tblHandler:   NewTableHandler(tblRepo, resRepo, nil),
	}
}

func (env *testEnv) seedReservation(t *testing.T, status string) *model.Reservation {
	t.Helper()
	res := &model.Reservation{
		FirstName:       "Tig",
		LastName:        "Bavaro",
		MobileNumber:    "555-0101",
		ReservationDate: "2026-09-03",
		ReservationTime: "18:00:00",
		People:          2,
		Status:          status,
	}
	require.NoError(t, env.reservations.Create(context.Background(), res))
	return res
}

func (env *testEnv) seedTable(t *testing.T, name string, capacity int) *model.Table {
	t.Helper()
	tbl := &model.Table{TableName: name, Capacity: capacity}
	require.NoError(t, env.tables.Create(context.Background(), tbl))
	return tbl
}

// request builds an echo context around an httptest recorder; the
// handlers under test are invoked directly, bypassing the router.
func request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// dataObj extracts the "data" object from an envelope response.
func dataObj(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %s", rec.Body.String())
	return data
}

// dataList extracts the "data" array from an envelope response.
func dataList(t *testing.T, rec *httptest.ResponseRecorder) []any {
	t.Helper()
	data, ok := decodeBody(t, rec)["data"].([]any)
	require.True(t, ok, "response has no data array: %s", rec.Body.String())
	return data
}

// errBody asserts the error shape and returns the message.
func errBody(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) string {
	t.Helper()
	body := decodeBody(t, rec)
	require.EqualValues(t, wantStatus, body["status"])
	msg, ok := body["message"].(string)
	require.True(t, ok, "error response has no message: %s", rec.Body.String())
	return msg
}
