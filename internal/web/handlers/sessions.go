package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/ledger"
)

// SessionsHandler handles attendance log endpoints.
type SessionsHandler struct {
	service *attendance.Service
	csvPath string
}

// NewSessionsHandler creates a new sessions handler. csvPath points at the
// attendance file served verbatim by Export.
func NewSessionsHandler(service *attendance.Service, csvPath string) *SessionsHandler {
	return &SessionsHandler{service: service, csvPath: csvPath}
}

// SessionResponse is one session row with both the exact stored values and
// the rendered duration.
type SessionResponse struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	LoginTime string `json:"login_time"`
	Logoff    string `json:"logoff_time,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Seconds   int    `json:"duration_seconds,omitempty"`
}

// List handles GET /api/v1/sessions?date=YYYY-MM-DD (defaults to today).
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(ledger.DateLayout)
	} else if _, err := time.Parse(ledger.DateLayout, date); err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	records, err := h.service.ListSessions(date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sessions := make([]SessionResponse, 0, len(records))
	for _, rec := range records {
		s := SessionResponse{
			Name:      rec.Name,
			Date:      rec.Date,
			LoginTime: rec.Login,
		}
		if rec.LoggedOff {
			s.Logoff = rec.Logoff
			s.Duration = ledger.FormatDuration(rec.Duration)
			s.Seconds = int(rec.Duration.Seconds())
		}
		sessions = append(sessions, s)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"date":     date,
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// Export handles GET /api/v1/sessions/export, serving the raw attendance CSV.
func (h *SessionsHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.csvPath)
	if os.IsNotExist(err) {
		data = []byte("Name,Date,LoginTime,LogoffTime,Duration\n")
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read attendance file")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
