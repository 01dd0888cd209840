package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestTrack_CountsEachEndpoint(t *testing.T) {
	usage := newFakeUsageStore()
	r := newTestRouter(&fakeStore{}, &fakeRefresher{}, &fakeClient{}, usage)

	for _, path := range []string{"/", "/categories", "/categories", "/news/Science", "/news/Sports", "/health", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	}

	assert.Equal(t, 1, usage.counts[usageKey{"/", "2026-10-18"}])
	assert.Equal(t, 2, usage.counts[usageKey{"/categories", "2026-10-18"}])
	assert.Equal(t, 1, usage.counts[usageKey{"/news/Science", "2026-10-18"}])
	assert.Equal(t, 1, usage.counts[usageKey{"/news/Sports", "2026-10-18"}])
	assert.Equal(t, 4, len(usage.counts))
}

func TestTrack_StoreErrorDoesNotFailRequest(t *testing.T) {
	usage := newFakeUsageStore()
	usage.err = errors.New("DB down")
	r := newTestRouter(&fakeStore{}, &fakeRefresher{}, &fakeClient{}, usage)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetAPIUsage(t *testing.T) {
	usage := newFakeUsageStore()
	r := newTestRouter(&fakeStore{}, &fakeRefresher{}, &fakeClient{}, usage)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/categories", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api-usage", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res []UsageResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, UsageResponse{Endpoint: "/categories", RequestCount: 1, LastAccessed: "2026-10-18"}, res[0])
	assert.Equal(t, UsageResponse{Endpoint: "/api-usage", RequestCount: 1, LastAccessed: "2026-10-18"}, res[1])
}

func TestGetAPIUsage_DBError(t *testing.T) {
	usage := newFakeUsageStore()
	usage.err = errors.New("DB down")
	r := newTestRouter(&fakeStore{}, &fakeRefresher{}, &fakeClient{}, usage)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api-usage", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
