package repository

import "errors"

// ErrUsernameExists is returned when registering a user whose username is
// already taken. Handlers should translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrReservationNotFound is returned when the requested reservation does
// not exist. Handlers should translate this into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrForbidden is returned when a user attempts to modify or delete a
// reservation owned by somebody else. Handlers should translate this into
// an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrRoomUnavailable is returned when the requested time window overlaps an
// existing reservation for the same room. Handlers should translate this
// into an HTTP 409 response.
var ErrRoomUnavailable = errors.New("room already reserved for this time window")
