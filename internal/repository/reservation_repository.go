package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kevinwu/room-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. Mutations are
// exposed as Tx variants that participate in a caller-owned transaction;
// the booking service opens the transaction, runs the overlap check and
// commits or rolls back. All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// WithTx runs fn inside a serializable transaction, committing on success
// and rolling back on any error. Serializable isolation plus the FOR UPDATE
// range scan in CountOverlappingTx keeps two concurrent bookings of the
// same window from both committing. No retry on serialization failure; the
// error surfaces to the caller and the client resubmits.
func (r *ReservationRepo) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction. It populates the generated ID and DB-default fields on the
// provided record. The caller must commit or roll back the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, room_id, purpose, start_time, end_time) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.UserID, res.RoomID, res.Purpose, res.StartTime.UTC(), res.EndTime.UTC())
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT id, user_id, room_id, purpose, start_time, end_time, created_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(
		&res.ID, &res.UserID, &res.RoomID, &res.Purpose, &res.StartTime, &res.EndTime, &res.CreatedAt,
	)
}

// GetByIDTx loads a reservation by ID within a transaction and locks the
// row (SELECT ... FOR UPDATE) so ownership checks and the subsequent write
// see a stable record. ErrReservationNotFound is returned when no row
// matches.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, purpose, start_time, end_time, created_at
               FROM reservations WHERE id = ? FOR UPDATE`
	var res model.Reservation
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.UserID, &res.RoomID, &res.Purpose, &res.StartTime, &res.EndTime, &res.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, err
}

// CountOverlappingTx counts reservations for the room whose [start_time,
// end_time) window intersects [start, end), excluding the reservation with
// excludeID (pass 0 on create so nothing is excluded; on update the
// reservation may overlap itself). The matching rows are locked with FOR
// UPDATE: combined with the (room_id, start_time) index and a serializable
// transaction this keeps two concurrent bookings for the same window from
// both committing.
func (r *ReservationRepo) CountOverlappingTx(ctx context.Context, tx *sql.Tx, roomID, excludeID uint64, start, end time.Time) (int64, error) {
	// Two windows [s1,e1) and [s2,e2) intersect iff s1 < e2 AND s2 < e1,
	// i.e. NOT (e1 <= s2 OR s1 >= e2).
	const q = `SELECT COUNT(*) FROM reservations
               WHERE room_id = ? AND id <> ? AND NOT (end_time <= ? OR start_time >= ?)
               FOR UPDATE`
	var n int64
	err := tx.QueryRowContext(ctx, q, roomID, excludeID, start.UTC(), end.UTC()).Scan(&n)
	return n, err
}

// UpdateTx persists the mutable fields (purpose and time window) of an
// already-loaded reservation within the given transaction.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations SET purpose = ?, start_time = ?, end_time = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, res.Purpose, res.StartTime.UTC(), res.EndTime.UTC(), res.ID)
	return err
}

// DeleteTx removes a reservation by ID within the given transaction.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}

// ReservationDetail is a reservation joined with room (and, for the public
// listing, location) data for display. RoomID and City are only populated
// by ListAll.
type ReservationDetail struct {
	ID        uint64
	Purpose   string
	StartTime time.Time
	EndTime   time.Time
	RoomID    uint64
	RoomName  string
	City      string
}

// ListByUser returns all reservations belonging to the given user joined
// with the room name, ordered by start time. An empty slice is returned
// when the user has no reservations.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT res.id, res.purpose, res.start_time, res.end_time, rm.name
               FROM reservations res
               JOIN rooms rm ON rm.id = res.room_id
               WHERE res.user_id = ?
               ORDER BY res.start_time`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.Purpose, &d.StartTime, &d.EndTime, &d.RoomName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListAll returns every reservation joined with room name and location
// city, ordered by start time. It backs the public overview endpoint and
// deliberately carries no user information.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	const q = `SELECT res.id, res.purpose, res.start_time, res.end_time, rm.id, rm.name, l.city
               FROM reservations res
               JOIN rooms rm ON rm.id = res.room_id
               JOIN locations l ON l.id = rm.location_id
               ORDER BY res.start_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.Purpose, &d.StartTime, &d.EndTime, &d.RoomID, &d.RoomName, &d.City); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
