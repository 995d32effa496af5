package model

import "time"

// Reservation records a user's booking of a room for a time window.
// A reservation is either present (booked) or absent (cancelled); there
// is no status column. The window is half-open: [StartTime, EndTime),
// and StartTime < EndTime always holds for persisted rows. No two
// reservations for the same room may have overlapping windows.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user; only the owner may update or delete.
//  RoomID    – room being booked.
//  Purpose   – free-text purpose of the booking.
//  StartTime – UTC start of the window (inclusive).
//  EndTime   – UTC end of the window (exclusive).
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	UserID    uint64    // reservations.user_id
	RoomID    uint64    // reservations.room_id
	Purpose   string    // reservations.purpose
	StartTime time.Time // reservations.start_time
	EndTime   time.Time // reservations.end_time
	CreatedAt time.Time // reservations.created_at
}
