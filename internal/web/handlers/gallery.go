package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/attendance"
)

// GalleryHandler handles gallery maintenance endpoints.
type GalleryHandler struct {
	service *attendance.Service
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(service *attendance.Service) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// Rebuild handles POST /api/v1/gallery/rebuild.
func (h *GalleryHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.RebuildGallery(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"entries": count,
		"message": "Gallery rebuilt.",
	})
}
