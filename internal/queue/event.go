// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// ReservationCreatedEvent is published after a reservation commits. It
// contains enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	Username      string `json:"username"`
	RoomID        uint64 `json:"room_id"`
	Purpose       string `json:"purpose"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	CreatedAt     string `json:"created_at"`
}
