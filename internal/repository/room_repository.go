package repository

import (
	"context"
	"database/sql"
)

// RoomRepo manages persistence for rooms and locations. Both tables are
// read-mostly reference data populated by the seeder.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// RoomWithLocation is a room row eagerly joined with its location's city,
// as rendered by GET /api/rooms.
type RoomWithLocation struct {
	ID       uint64
	Name     string
	Capacity *int32
	City     string
}

// ListWithLocation returns all rooms joined with their location, ordered by
// room id for deterministic output.
func (r *RoomRepo) ListWithLocation(ctx context.Context) ([]RoomWithLocation, error) {
	const q = `SELECT r.id, r.name, r.capacity, l.city
               FROM rooms r
               JOIN locations l ON l.id = r.location_id
               ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]RoomWithLocation, 0)
	for rows.Next() {
		var room RoomWithLocation
		var capacity sql.NullInt32
		if err := rows.Scan(&room.ID, &room.Name, &capacity, &room.City); err != nil {
			return nil, err
		}
		if capacity.Valid {
			c := capacity.Int32
			room.Capacity = &c
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
