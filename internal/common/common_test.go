package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aerocost/api/internal/models/dtos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService(t *testing.T) {
	cache := NewCacheService(time.Minute, time.Minute)
	defer cache.Close()

	cache.Set("revoked:abc", true, time.Minute)
	v, ok := cache.Get("revoked:abc")
	require.True(t, ok)
	assert.Equal(t, true, v)

	cache.Delete("revoked:abc")
	_, ok = cache.Get("revoked:abc")
	assert.False(t, ok)

	cache.Set("short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	_, ok = cache.Get("short")
	assert.False(t, ok, "expired entries are not returned")
}

func TestStartOfMonthUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 22:00 on Jan 31 in BRT is already Feb 1 in UTC
	got := StartOfMonthUTC(time.Date(2025, 1, 31, 22, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestRespondHelpers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondSuccess(rec, time.Now(), "ok", map[string]int{"n": 1}, http.StatusCreated)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var body dtos.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "ok", body.Message)
		assert.NotEmpty(t, body.ResponseTime)
	})

	t.Run("error text wins over message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondError(rec, time.Now(), errors.New("specific"), "generic", http.StatusBadRequest)

		var body dtos.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "specific", body.Error)
	})
}
