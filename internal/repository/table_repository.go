package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableRepo provides persistence for dining tables.  Occupancy changes
// run as compare-and-set updates predicated on the current occupied
// flag, so two concurrent seatings of the same table cannot both
// succeed: the loser sees zero affected rows and gets the same
// business error an ordinary double-seating would produce.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning this repository and ReservationRepo.
func (r *TableRepo) DB() *sql.DB { return r.db }

const tableColumns = `id, table_name, capacity, occupied, reservation_id`

func scanTable(row interface{ Scan(...any) error }) (*model.Table, error) {
	var (
		t     model.Table
		resID sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.TableName, &t.Capacity, &t.Occupied, &resID); err != nil {
		return nil, err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		t.ReservationID = &id
	}
	return &t, nil
}

// Create inserts a new table and populates the generated ID.  New
// tables never reference a reservation; the occupied flag is whatever
// the validated payload carried.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO tables (table_name, capacity, occupied) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, t.TableName, t.Capacity, t.Occupied)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	created, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *created
	return nil
}

// GetByID returns a single table or ErrTableNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	return t, err
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *TableRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE id = ?`
	t, err := scanTable(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	return t, err
}

// List returns every table ordered by name for a stable floor plan.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables ORDER BY table_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SeatTx marks a table occupied by the given reservation inside a
// transaction.  The update is predicated on the table still being
// free; losing that race returns ErrTableOccupied.
func (r *TableRepo) SeatTx(ctx context.Context, tx *sql.Tx, tableID, reservationID uint64) error {
	const q = `UPDATE tables SET occupied = TRUE, reservation_id = ? WHERE id = ? AND occupied = FALSE`
	result, err := tx.ExecContext(ctx, q, reservationID, tableID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTableOccupied
	}
	return nil
}

// ReleaseTx frees an occupied table inside a transaction.  The update
// is predicated on the table currently being occupied; releasing a
// free table (including a second release) returns ErrTableNotOccupied.
func (r *TableRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, tableID uint64) error {
	const q = `UPDATE tables SET occupied = FALSE, reservation_id = NULL WHERE id = ? AND occupied = TRUE`
	result, err := tx.ExecContext(ctx, q, tableID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTableNotOccupied
	}
	return nil
}

// ClearTx detaches any reservation reference from a table without an
// occupancy precondition.  It backs the explicit detach path, where a
// null reservation id in the seat request means "no reservation".
func (r *TableRepo) ClearTx(ctx context.Context, tx *sql.Tx, tableID uint64) error {
	const q = `UPDATE tables SET occupied = FALSE, reservation_id = NULL WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, tableID)
	return err
}

// Clear is ClearTx outside a transaction; the single UPDATE needs no
// surrounding atomicity.
func (r *TableRepo) Clear(ctx context.Context, tableID uint64) error {
	const q = `UPDATE tables SET occupied = FALSE, reservation_id = NULL WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, tableID)
	return err
}
