package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/kevinwu/room-reservation/internal/model"
	"github.com/kevinwu/room-reservation/internal/repository"
)

func TestParseWindowValid(t *testing.T) {
	start, end, err := ParseWindow("2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")
	if err != nil {
		t.Fatalf("ParseWindow returned error: %v", err)
	}
	if !start.Before(end) {
		t.Fatalf("start %v not before end %v", start, end)
	}
	if start.Location() != time.UTC || end.Location() != time.UTC {
		t.Fatal("window not normalized to UTC")
	}
}

func TestParseWindowBadTimestamps(t *testing.T) {
	if _, _, err := ParseWindow("not-a-date", "2025-06-01T10:00:00Z"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("bad start: got %v, want ErrInvalidTime", err)
	}
	if _, _, err := ParseWindow("2025-06-01T09:00:00Z", "also-not-a-date"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("bad end: got %v, want ErrInvalidTime", err)
	}
}

func TestParseWindowRejectsInvertedRange(t *testing.T) {
	if _, _, err := ParseWindow("2025-06-01T10:00:00Z", "2025-06-01T09:00:00Z"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("inverted: got %v, want ErrInvalidRange", err)
	}
	// Zero-length windows are rejected too; [s, s) reserves nothing.
	if _, _, err := ParseWindow("2025-06-01T09:00:00Z", "2025-06-01T09:00:00Z"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("empty: got %v, want ErrInvalidRange", err)
	}
}

func baseReservation() model.Reservation {
	return model.Reservation{
		ID:        7,
		UserID:    1,
		RoomID:    2,
		Purpose:   "sync",
		StartTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func strPtr(s string) *string { return &s }

func TestApplyPatchPurposeOnly(t *testing.T) {
	got, err := ApplyPatch(baseReservation(), ReservationPatch{Purpose: strPtr("retro")})
	if err != nil {
		t.Fatalf("ApplyPatch returned error: %v", err)
	}
	if got.Purpose != "retro" {
		t.Fatalf("purpose = %q, want %q", got.Purpose, "retro")
	}
	if !got.StartTime.Equal(baseReservation().StartTime) || !got.EndTime.Equal(baseReservation().EndTime) {
		t.Fatal("window changed by a purpose-only patch")
	}
}

func TestApplyPatchMovesWindow(t *testing.T) {
	got, err := ApplyPatch(baseReservation(), ReservationPatch{
		Start: strPtr("2025-06-01T11:00:00Z"),
		End:   strPtr("2025-06-01T12:00:00Z"),
	})
	if err != nil {
		t.Fatalf("ApplyPatch returned error: %v", err)
	}
	if got.StartTime != time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC) {
		t.Fatalf("start = %v", got.StartTime)
	}
	if got.EndTime != time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) {
		t.Fatalf("end = %v", got.EndTime)
	}
}

func TestApplyPatchRejectsBadTimestamp(t *testing.T) {
	_, err := ApplyPatch(baseReservation(), ReservationPatch{Start: strPtr("tomorrow-ish")})
	if !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("got %v, want ErrInvalidTime", err)
	}
}

func TestApplyPatchRevalidatesWindow(t *testing.T) {
	// Moving only the start past the existing end must fail.
	_, err := ApplyPatch(baseReservation(), ReservationPatch{Start: strPtr("2025-06-01T10:30:00Z")})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("got %v, want ErrInvalidRange", err)
	}
}

func TestApplyPatchEmptyPatchKeepsReservation(t *testing.T) {
	got, err := ApplyPatch(baseReservation(), ReservationPatch{})
	if err != nil {
		t.Fatalf("ApplyPatch returned error: %v", err)
	}
	if got != baseReservation() {
		t.Fatalf("empty patch changed the reservation: %+v", got)
	}
}

// fakeReservationStore is an in-memory ReservationStore. Its WithTx has no
// real transaction; the nil *sql.Tx is ignored by the other methods.
type fakeReservationStore struct {
	byID   map[uint64]model.Reservation
	nextID uint64
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{byID: map[uint64]model.Reservation{}}
}

func (f *fakeReservationStore) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (f *fakeReservationStore) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now().UTC()
	f.byID[res.ID] = *res
	return nil
}

func (f *fakeReservationStore) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationStore) CountOverlappingTx(ctx context.Context, tx *sql.Tx, roomID, excludeID uint64, start, end time.Time) (int64, error) {
	var n int64
	for _, r := range f.byID {
		if r.RoomID != roomID || r.ID == excludeID {
			continue
		}
		if start.Before(r.EndTime) && r.StartTime.Before(end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeReservationStore) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	f.byID[res.ID] = *res
	return nil
}

func (f *fakeReservationStore) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	delete(f.byID, id)
	return nil
}

func mustCreate(t *testing.T, svc *BookingService, userID, roomID uint64, start, end string) model.Reservation {
	t.Helper()
	res, err := svc.Create(context.Background(), userID, roomID, "sync", start, end)
	if err != nil {
		t.Fatalf("Create(%s, %s) returned error: %v", start, end, err)
	}
	return res
}

func TestCreateRejectsOverlappingWindow(t *testing.T) {
	svc := NewBookingService(newFakeReservationStore())
	ctx := context.Background()

	mustCreate(t, svc, 1, 2, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")

	_, err := svc.Create(ctx, 3, 2, "retro", "2025-06-01T09:30:00Z", "2025-06-01T10:30:00Z")
	if !errors.Is(err, repository.ErrRoomUnavailable) {
		t.Fatalf("got %v, want ErrRoomUnavailable", err)
	}

	// A different room is free for the same window.
	mustCreate(t, svc, 3, 5, "2025-06-01T09:30:00Z", "2025-06-01T10:30:00Z")

	// Back-to-back windows share only the boundary instant.
	mustCreate(t, svc, 3, 2, "2025-06-01T10:00:00Z", "2025-06-01T11:00:00Z")
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	store := newFakeReservationStore()
	svc := NewBookingService(store)

	res := mustCreate(t, svc, 1, 2, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")

	_, err := svc.Update(context.Background(), res.ID, 99, ReservationPatch{Purpose: strPtr("hijack")})
	if !errors.Is(err, repository.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if store.byID[res.ID].Purpose != "sync" {
		t.Fatalf("forbidden update changed the row: %+v", store.byID[res.ID])
	}
}

func TestUpdateMayOverlapItself(t *testing.T) {
	svc := NewBookingService(newFakeReservationStore())

	res := mustCreate(t, svc, 1, 2, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")

	updated, err := svc.Update(context.Background(), res.ID, 1, ReservationPatch{
		Start: strPtr("2025-06-01T09:30:00Z"),
		End:   strPtr("2025-06-01T10:30:00Z"),
	})
	if err != nil {
		t.Fatalf("shifting a reservation over itself failed: %v", err)
	}
	if updated.StartTime != time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) {
		t.Fatalf("start = %v", updated.StartTime)
	}
}

func TestUpdateRejectsOverlapWithOtherReservation(t *testing.T) {
	svc := NewBookingService(newFakeReservationStore())

	mustCreate(t, svc, 1, 2, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")
	second := mustCreate(t, svc, 1, 2, "2025-06-01T11:00:00Z", "2025-06-01T12:00:00Z")

	_, err := svc.Update(context.Background(), second.ID, 1, ReservationPatch{
		Start: strPtr("2025-06-01T09:30:00Z"),
		End:   strPtr("2025-06-01T10:30:00Z"),
	})
	if !errors.Is(err, repository.ErrRoomUnavailable) {
		t.Fatalf("got %v, want ErrRoomUnavailable", err)
	}
}

func TestDeleteChecksOwnershipAndExistence(t *testing.T) {
	store := newFakeReservationStore()
	svc := NewBookingService(store)
	ctx := context.Background()

	res := mustCreate(t, svc, 1, 2, "2025-06-01T09:00:00Z", "2025-06-01T10:00:00Z")

	if err := svc.Delete(ctx, res.ID, 99); !errors.Is(err, repository.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if _, ok := store.byID[res.ID]; !ok {
		t.Fatal("forbidden delete removed the row")
	}

	if err := svc.Delete(ctx, res.ID, 1); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.Delete(ctx, res.ID, 1); !errors.Is(err, repository.ErrReservationNotFound) {
		t.Fatalf("got %v, want ErrReservationNotFound", err)
	}
}
