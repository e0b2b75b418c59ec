package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations.  All writes
// that participate in a paired table/reservation update are exposed as
// *Tx methods operating inside a caller-owned transaction; the caller
// must commit or roll back.  Dates and times are stored as their
// canonical wire strings, which keeps ordering lexicographic and
// identical to chronological.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning this repository and TableRepo.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, first_name, last_name, mobile_number, reservation_date, reservation_time, people, status`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&res.ReservationDate, &res.ReservationTime, &res.People, &res.Status)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new reservation and populates the generated ID on
// the provided value.  The row is queried back after insertion so the
// returned state reflects any database defaults.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status) VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	created, err := r.GetByID(ctx, res.ID)
	if err != nil {
		return err
	}
	*res = *created
	return nil
}

// GetByID returns a single reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// GetByIDTx is GetByID inside an existing transaction, used by the
// seating and status flows to read state they are about to change.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// ListAll returns every reservation ordered by service date then time.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY reservation_date, reservation_time`
	return r.queryList(ctx, q)
}

// ListByDate returns the reservations for one service date ordered by
// time ascending.  Finished reservations are excluded: the host stand
// only cares about parties still expected or currently seated.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_date = ? AND status <> 'finished' ORDER BY reservation_time ASC`
	return r.queryList(ctx, q, date)
}

// SearchByPhone returns reservations whose mobile number contains the
// given fragment, newest service date first.  All statuses are
// included so past visits remain searchable.
func (r *ReservationRepo) SearchByPhone(ctx context.Context, phone string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE mobile_number LIKE ? ORDER BY reservation_date DESC, reservation_time DESC`
	return r.queryList(ctx, q, "%"+strings.TrimSpace(phone)+"%")
}

func (r *ReservationRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatusFromTx applies a compare-and-set status change inside a
// transaction: the row is only updated when its status still equals
// `from`.  It reports whether a row changed; false means a concurrent
// update moved the reservation first and the caller must surface the
// appropriate business error rather than overwrite.
func (r *ReservationRepo) UpdateStatusFromTx(ctx context.Context, tx *sql.Tx, id uint64, from, to string) (bool, error) {
	const q = `UPDATE reservations SET status = ? WHERE id = ? AND status = ?`
	result, err := tx.ExecContext(ctx, q, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// FinishActiveTx marks a reservation finished if it is still in an
// active (booked or seated) state.  A reservation that already reached
// a terminal state is left untouched; the table release proceeds
// regardless, so freeing a table can never be blocked by reservation
// history.
func (r *ReservationRepo) FinishActiveTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE reservations SET status = 'finished' WHERE id = ? AND status IN ('booked', 'seated')`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}
