package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGalleryHandler_Rebuild(t *testing.T) {
	service, _, _ := testService(t)
	enrollRed(t, service, "alice")
	handler := NewGalleryHandler(service)

	req := httptest.NewRequest("POST", "/api/v1/gallery/rebuild", nil)
	recorder := httptest.NewRecorder()

	handler.Rebuild(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Entries int `json:"entries"`
	}
	parseJSONResponse(t, recorder, &resp)

	if resp.Entries != 1 {
		t.Errorf("expected 1 gallery entry, got %d", resp.Entries)
	}
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	recorder := httptest.NewRecorder()

	HealthCheck(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)

	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %s", resp["status"])
	}
}
