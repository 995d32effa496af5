package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kevinwu/room-reservation/internal/config"
)

func TestPayloadCodecRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"rooms":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload returned error: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header lost: %v", gotHdr)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	if _, _, _, ok := decodePayload([]byte{1, 2, 3}); ok {
		t.Fatal("truncated payload accepted")
	}
}

func TestCacheKeyStableAndQuerySensitive(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	e := echo.New()

	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/rooms")
		return c
	}

	k1 := cacheKeyFrom(cfg, ctxFor("/api/rooms"))
	k2 := cacheKeyFrom(cfg, ctxFor("/api/rooms"))
	k3 := cacheKeyFrom(cfg, ctxFor("/api/rooms?x=1"))

	if k1 != k2 {
		t.Fatalf("same request produced different keys: %q vs %q", k1, k2)
	}
	if k1 == k3 {
		t.Fatal("query string ignored by route_query strategy")
	}
}

func TestCaptureWriterDetectsOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

	if _, err := cw.Write([]byte("12345")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if cw.truncated() {
		t.Fatal("under-limit response marked truncated")
	}

	if _, err := cw.Write([]byte("67890")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !cw.truncated() {
		t.Fatal("overflowing response not marked truncated")
	}
	// The client still receives the full body; only the capture is bounded.
	if rec.Body.String() != "1234567890" {
		t.Fatalf("client body = %q, want full response", rec.Body.String())
	}
}

func TestCaptureWriterExactFillThenMore(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	if _, err := cw.Write([]byte("abcd")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if cw.truncated() {
		t.Fatal("exact-fill response marked truncated")
	}
	if _, err := cw.Write([]byte("e")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if !cw.truncated() {
		t.Fatal("write past an exactly-filled capture not marked truncated")
	}
}

func TestNewRedisCacheNilClientIsNoOp(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}
	mw := NewRedisCache(cfg, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called with nil redis client")
	}
}
