package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/embedding"
	"github.com/kozaktomas/face-attendance/internal/frame"
	"github.com/kozaktomas/face-attendance/internal/gallery"
)

// maxUploadSize bounds uploaded frames (8 MB covers any webcam capture).
const maxUploadSize = 8 << 20

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// readImageUpload extracts the "image" part from a multipart form.
func readImageUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, errors.New("missing image upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return nil, errors.New("failed to read image upload")
	}
	return data, nil
}

// respondServiceError maps core errors onto HTTP statuses: bad frames are
// the client's fault, collaborator outages are upstream, everything else
// (persistence included) is ours.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, frame.ErrInvalidFrame):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, embedding.ErrService):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, gallery.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gallery.ErrNoFaceDetected):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
