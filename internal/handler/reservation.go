package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kevinwu/room-reservation/internal/model"
	"github.com/kevinwu/room-reservation/internal/queue"
	"github.com/kevinwu/room-reservation/internal/repository"
	"github.com/kevinwu/room-reservation/internal/service"
	"github.com/kevinwu/room-reservation/internal/utils"
)

// ReservationHandler groups the booking service and repositories needed to
// create, list, update and delete reservations on behalf of users. All
// mutating methods assume JWT authentication has already run; the
// authenticated username is resolved to a user row here, so a token for a
// user that no longer exists yields 404.
type ReservationHandler struct {
	Users        *repository.UserRepo
	Reservations *repository.ReservationRepo
	Booking      *service.BookingService
}

// NewReservationHandler constructs a ReservationHandler with the provided
// dependencies. All of them must be non-nil.
func NewReservationHandler(users *repository.UserRepo, reservations *repository.ReservationRepo, booking *service.BookingService) *ReservationHandler {
	if users == nil || reservations == nil || booking == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Users: users, Reservations: reservations, Booking: booking}
}

// ----- DTOs -----

// The reservation wire format keeps the German field names of the original
// schema (Zweck/Startzeit/Endzeit); the frontend depends on them.

type reserveReq struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	RoomID  uint64 `json:"room_id"`
	Purpose string `json:"purpose"`
}

type updateReservationReq struct {
	Start   *string `json:"start"`
	End     *string `json:"end"`
	Purpose *string `json:"purpose"`
}

type ownReservationResp struct {
	ID       uint64 `json:"id"`
	Purpose  string `json:"Zweck"`
	Start    string `json:"Startzeit"`
	End      string `json:"Endzeit"`
	RoomName string `json:"room_name"`
}

type publicReservationResp struct {
	ID       uint64 `json:"id"`
	Purpose  string `json:"Zweck"`
	Start    string `json:"Startzeit"`
	End      string `json:"Endzeit"`
	RoomID   uint64 `json:"room_id"`
	RoomName string `json:"room_name"`
	Location string `json:"location"`
}

type reservationResp struct {
	ID      uint64 `json:"id"`
	Purpose string `json:"Zweck"`
	Start   string `json:"Startzeit"`
	End     string `json:"Endzeit"`
	RoomID  uint64 `json:"room_id"`
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ID:      r.ID,
		Purpose: r.Purpose,
		Start:   utils.FormatDBTime(r.StartTime),
		End:     utils.FormatDBTime(r.EndTime),
		RoomID:  r.RoomID,
	}
}

// currentUser resolves the authenticated username to its user row.
func (h *ReservationHandler) currentUser(c echo.Context) (model.User, int, string) {
	username, err := usernameFromContext(c)
	if err != nil {
		return model.User{}, http.StatusUnauthorized, "unauthorized"
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, http.StatusNotFound, "User not found"
		}
		return model.User{}, http.StatusInternalServerError, "query failed"
	}
	return u, 0, ""
}

// Reserve handles POST /api/reserve. It validates the requested window,
// checks it against existing bookings for the room and persists the
// reservation atomically. On success a reservation.created event is
// published best-effort; a broker outage never fails the booking.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	u, status, msg := h.currentUser(c)
	if status != 0 {
		return c.JSON(status, echo.Map{"msg": msg})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "room_id is required"})
	}

	res, err := h.Booking.Create(c.Request().Context(), u.ID, req.RoomID, req.Purpose, req.Start, req.End)
	if err != nil {
		return reservationError(c, err)
	}

	go func(ev queue.ReservationCreatedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := service.PublishReservationCreated(ctx, ev); err != nil {
			log.Printf("reserve: publish event failed: %v", err)
		}
	}(queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		UserID:        u.ID,
		Username:      u.Username,
		RoomID:        res.RoomID,
		Purpose:       res.Purpose,
		StartTime:     utils.FormatDBTime(res.StartTime),
		EndTime:       utils.FormatDBTime(res.EndTime),
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"msg": "reservation created"})
}

// ListMine handles GET /api/reservations. It returns the authenticated
// user's reservations joined with the room name.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	u, status, msg := h.currentUser(c)
	if status != 0 {
		return c.JSON(status, echo.Map{"msg": msg})
	}
	details, err := h.Reservations.ListByUser(c.Request().Context(), u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
	}
	list := make([]ownReservationResp, 0, len(details))
	for _, d := range details {
		list = append(list, ownReservationResp{
			ID:       d.ID,
			Purpose:  d.Purpose,
			Start:    utils.FormatDBTime(d.StartTime),
			End:      utils.FormatDBTime(d.EndTime),
			RoomName: d.RoomName,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// ListAll handles GET /api/reservations_withoutAuth. It returns every
// reservation joined with room and location for a kiosk-style overview
// display. No usernames are exposed.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	details, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
	}
	list := make([]publicReservationResp, 0, len(details))
	for _, d := range details {
		list = append(list, publicReservationResp{
			ID:       d.ID,
			Purpose:  d.Purpose,
			Start:    utils.FormatDBTime(d.StartTime),
			End:      utils.FormatDBTime(d.EndTime),
			RoomID:   d.RoomID,
			RoomName: d.RoomName,
			Location: d.City,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// Update handles PUT /api/reservations/:id. Only the fields present in the
// body are applied; the resulting window is re-validated, including the
// overlap check against other bookings for the room.
func (h *ReservationHandler) Update(c echo.Context) error {
	u, status, msg := h.currentUser(c)
	if status != 0 {
		return c.JSON(status, echo.Map{"msg": msg})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid reservation id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}

	updated, err := h.Booking.Update(c.Request().Context(), id, u.ID, service.ReservationPatch{
		Start:   req.Start,
		End:     req.End,
		Purpose: req.Purpose,
	})
	if err != nil {
		return reservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"msg":         "reservation updated",
		"reservation": toReservationResp(updated),
	})
}

// Delete handles DELETE /api/reservations/:id with the same existence and
// ownership checks as Update.
func (h *ReservationHandler) Delete(c echo.Context) error {
	u, status, msg := h.currentUser(c)
	if status != 0 {
		return c.JSON(status, echo.Map{"msg": msg})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid reservation id"})
	}
	if err := h.Booking.Delete(c.Request().Context(), id, u.ID); err != nil {
		return reservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "reservation deleted"})
}

// reservationError maps booking service errors to HTTP responses.
func reservationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidTime), errors.Is(err, service.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "reservation not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"msg": "not your reservation"})
	case errors.Is(err, repository.ErrRoomUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"msg": "room already reserved for this time window"})
	default:
		log.Printf("reservation: storage error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "reservation failed, please try again"})
	}
}
