package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/ledger"
)

// AttendanceHandler handles login and logoff endpoints.
type AttendanceHandler struct {
	service *attendance.Service
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(service *attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// DecisionResponse is the JSON shape of a login/logoff outcome. State
// machine rejections come back with HTTP 200 and a non-ok status field;
// they are informational, not errors.
type DecisionResponse struct {
	Identity   string `json:"identity,omitempty"`
	Matched    bool   `json:"matched"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Duration   string `json:"duration,omitempty"`
	CaptureRef string `json:"capture_ref,omitempty"`
}

func decisionResponse(d *attendance.Decision) DecisionResponse {
	resp := DecisionResponse{
		Identity:   d.Identity,
		Matched:    d.Matched,
		Message:    d.Message,
		CaptureRef: d.CaptureRef,
	}
	if d.Matched {
		resp.Status = d.Status.String()
	} else {
		resp.Status = "no_match"
	}
	if d.Record.LoggedOff {
		resp.Duration = ledger.FormatDuration(d.Record.Duration)
	}
	return resp
}

// Login handles POST /api/v1/attendance/login.
func (h *AttendanceHandler) Login(w http.ResponseWriter, r *http.Request) {
	imageData, err := readImageUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := h.service.Login(r.Context(), imageData)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, decisionResponse(decision))
}

// Logoff handles POST /api/v1/attendance/logoff.
func (h *AttendanceHandler) Logoff(w http.ResponseWriter, r *http.Request) {
	imageData, err := readImageUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := h.service.Logoff(r.Context(), imageData)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, decisionResponse(decision))
}
