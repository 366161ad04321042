package common_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/farmer-shop/internal/common"
)

func newIdem(t *testing.T) (common.Idem, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return common.Idem{R: client, TTL: time.Minute}, mr
}

func post(h http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	if key != "" {
		req.Header.Set(common.IdempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyRejectsReplay(t *testing.T) {
	idem, _ := newIdem(t)
	calls := 0
	h := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	require.Equal(t, http.StatusOK, post(h, "abc").Code)
	replay := post(h, "abc")
	require.Equal(t, http.StatusConflict, replay.Code)
	require.Contains(t, replay.Body.String(), "IDEMPOTENT_REPLAY")
	require.Equal(t, http.StatusOK, post(h, "def").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	idem, _ := newIdem(t)
	calls := 0
	h := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	post(h, "")
	post(h, "")
	require.Equal(t, 2, calls)
}

func TestIdempotencyReleasesKeyOnServerError(t *testing.T) {
	idem, _ := newIdem(t)
	status := http.StatusInternalServerError
	h := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))

	require.Equal(t, http.StatusInternalServerError, post(h, "retry").Code)
	status = http.StatusOK
	require.Equal(t, http.StatusOK, post(h, "retry").Code)
}

func TestIdempotencyKeyExpires(t *testing.T) {
	idem, mr := newIdem(t)
	h := idem.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	require.Equal(t, http.StatusOK, post(h, "ttl").Code)
	mr.FastForward(2 * time.Minute)
	require.Equal(t, http.StatusOK, post(h, "ttl").Code)
}
