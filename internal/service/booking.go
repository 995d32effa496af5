// Package service contains the booking workflow: time-window validation and
// overlap-safe persistence of reservations. Handlers translate the errors
// returned here into HTTP status codes.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kevinwu/room-reservation/internal/model"
	"github.com/kevinwu/room-reservation/internal/repository"
	"github.com/kevinwu/room-reservation/internal/utils"
)

// ErrInvalidTime is returned when a start/end timestamp cannot be parsed.
// The wrapped message carries the parse detail for the 400 response body.
var ErrInvalidTime = errors.New("invalid timestamp")

// ErrInvalidRange is returned when a window does not satisfy start < end.
var ErrInvalidRange = errors.New("start time must be before end time")

// ReservationStore is the persistence surface the booking workflow needs;
// *repository.ReservationRepo is the production implementation. WithTx must
// run fn inside a single transaction whose isolation prevents two
// overlapping bookings from both committing.
type ReservationStore interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
	CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error
	GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error)
	CountOverlappingTx(ctx context.Context, tx *sql.Tx, roomID, excludeID uint64, start, end time.Time) (int64, error)
	UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error
	DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error
}

// BookingService orchestrates reservation creation, update and deletion.
// Every mutation runs in a single transaction via the store's WithTx; the
// overlap check locks the examined range, so two concurrent bookings of the
// same room and window cannot both commit.
type BookingService struct {
	Reservations ReservationStore
}

// NewBookingService constructs a BookingService. The store must be non-nil.
func NewBookingService(reservations ReservationStore) *BookingService {
	if reservations == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{Reservations: reservations}
}

// ReservationPatch carries the optional fields of a partial update. A nil
// field leaves the current value untouched.
type ReservationPatch struct {
	Start   *string
	End     *string
	Purpose *string
}

// ParseWindow parses a start/end timestamp pair and enforces start < end.
func ParseWindow(start, end string) (time.Time, time.Time, error) {
	s, err := utils.ParseTimestamp(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", ErrInvalidTime, start)
	}
	e, err := utils.ParseTimestamp(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", ErrInvalidTime, end)
	}
	if !s.Before(e) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return s, e, nil
}

// ApplyPatch returns a copy of the reservation with the patch applied and
// the resulting window re-validated per the create-path rules.
func ApplyPatch(res model.Reservation, patch ReservationPatch) (model.Reservation, error) {
	if patch.Purpose != nil {
		res.Purpose = *patch.Purpose
	}
	if patch.Start != nil {
		s, err := utils.ParseTimestamp(*patch.Start)
		if err != nil {
			return model.Reservation{}, fmt.Errorf("%w: start %q", ErrInvalidTime, *patch.Start)
		}
		res.StartTime = s
	}
	if patch.End != nil {
		e, err := utils.ParseTimestamp(*patch.End)
		if err != nil {
			return model.Reservation{}, fmt.Errorf("%w: end %q", ErrInvalidTime, *patch.End)
		}
		res.EndTime = e
	}
	if !res.StartTime.Before(res.EndTime) {
		return model.Reservation{}, ErrInvalidRange
	}
	return res, nil
}

// Create validates the requested window and persists a new reservation.
// It returns repository.ErrRoomUnavailable when the window overlaps an
// existing reservation for the room.
func (s *BookingService) Create(ctx context.Context, userID, roomID uint64, purpose, start, end string) (model.Reservation, error) {
	startT, endT, err := ParseWindow(start, end)
	if err != nil {
		return model.Reservation{}, err
	}
	res := model.Reservation{
		UserID:    userID,
		RoomID:    roomID,
		Purpose:   purpose,
		StartTime: startT,
		EndTime:   endT,
	}
	err = s.Reservations.WithTx(ctx, func(tx *sql.Tx) error {
		n, err := s.Reservations.CountOverlappingTx(ctx, tx, roomID, 0, startT, endT)
		if err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrRoomUnavailable
		}
		return s.Reservations.CreateTx(ctx, tx, &res)
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// Update applies a partial update to an existing reservation after checking
// existence and ownership, re-validating the resulting window including the
// overlap constraint (the reservation may overlap itself).
func (s *BookingService) Update(ctx context.Context, reservationID, requesterID uint64, patch ReservationPatch) (model.Reservation, error) {
	var updated model.Reservation
	err := s.Reservations.WithTx(ctx, func(tx *sql.Tx) error {
		current, err := s.Reservations.GetByIDTx(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if current.UserID != requesterID {
			return repository.ErrForbidden
		}
		next, err := ApplyPatch(current, patch)
		if err != nil {
			return err
		}
		n, err := s.Reservations.CountOverlappingTx(ctx, tx, next.RoomID, next.ID, next.StartTime, next.EndTime)
		if err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrRoomUnavailable
		}
		if err := s.Reservations.UpdateTx(ctx, tx, &next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return updated, nil
}

// Delete removes a reservation after checking existence and ownership.
func (s *BookingService) Delete(ctx context.Context, reservationID, requesterID uint64) error {
	return s.Reservations.WithTx(ctx, func(tx *sql.Tx) error {
		current, err := s.Reservations.GetByIDTx(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if current.UserID != requesterID {
			return repository.ErrForbidden
		}
		return s.Reservations.DeleteTx(ctx, tx, reservationID)
	})
}
