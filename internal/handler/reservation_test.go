package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kevinwu/room-reservation/internal/model"
	"github.com/kevinwu/room-reservation/internal/repository"
	"github.com/kevinwu/room-reservation/internal/service"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/reserve", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReservationErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: start %q", service.ErrInvalidTime, "not-a-date"), http.StatusBadRequest},
		{service.ErrInvalidRange, http.StatusBadRequest},
		{repository.ErrReservationNotFound, http.StatusNotFound},
		{repository.ErrForbidden, http.StatusForbidden},
		{repository.ErrRoomUnavailable, http.StatusConflict},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, rec := newTestContext()
		if err := reservationError(c, tc.err); err != nil {
			t.Fatalf("reservationError returned error: %v", err)
		}
		if rec.Code != tc.want {
			t.Errorf("error %v mapped to %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestReservationErrorBadTimeIsDescriptive(t *testing.T) {
	c, rec := newTestContext()
	err := fmt.Errorf("%w: start %q", service.ErrInvalidTime, "not-a-date")
	if e := reservationError(c, err); e != nil {
		t.Fatalf("reservationError returned error: %v", e)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["msg"] == "" {
		t.Fatal("400 response carries no message")
	}
}

func TestToReservationRespWireKeys(t *testing.T) {
	res := model.Reservation{
		ID:        3,
		UserID:    1,
		RoomID:    2,
		Purpose:   "sync",
		StartTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(toReservationResp(res))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	// The frontend depends on the original German field names.
	if m["Zweck"] != "sync" {
		t.Fatalf("Zweck = %v, want sync", m["Zweck"])
	}
	if m["Startzeit"] != "2025-06-01 09:00:00" {
		t.Fatalf("Startzeit = %v", m["Startzeit"])
	}
	if m["Endzeit"] != "2025-06-01 10:00:00" {
		t.Fatalf("Endzeit = %v", m["Endzeit"])
	}
}

func TestUsernameFromContext(t *testing.T) {
	c, _ := newTestContext()
	if _, err := usernameFromContext(c); err == nil {
		t.Fatal("expected error when no username is set")
	}
	c.Set("username", "alice")
	got, err := usernameFromContext(c)
	if err != nil {
		t.Fatalf("usernameFromContext returned error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("got %q, want alice", got)
	}
}

func TestHomePayload(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/home", nil)
	rec := httptest.NewRecorder()
	if err := Home(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Home returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Message string   `json:"message"`
		People  []string `json:"people"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Message == "" || len(body.People) != 3 {
		t.Fatalf("unexpected payload: %+v", body)
	}
}
