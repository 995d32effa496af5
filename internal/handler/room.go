package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kevinwu/room-reservation/internal/repository"
)

// RoomHandler exposes the public room catalog.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

// roomResp is a room as rendered by GET /api/rooms, with the location
// city joined in.
type roomResp struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Capacity *int32 `json:"capacity"`
	Location string `json:"location"`
}

// GetRooms handles GET /api/rooms. It returns every room with its
// location; no authentication is required.
func (h *RoomHandler) GetRooms(c echo.Context) error {
	rooms, err := h.Rooms.ListWithLocation(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "query failed"})
	}
	list := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		list = append(list, roomResp{ID: r.ID, Name: r.Name, Capacity: r.Capacity, Location: r.City})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": list})
}
