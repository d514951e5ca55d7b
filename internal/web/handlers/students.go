package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-attendance/internal/attendance"
)

// StudentsHandler handles enrollment management endpoints.
type StudentsHandler struct {
	service *attendance.Service
}

// NewStudentsHandler creates a new students handler.
func NewStudentsHandler(service *attendance.Service) *StudentsHandler {
	return &StudentsHandler{service: service}
}

// List handles GET /api/v1/students.
func (h *StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.ListStudents()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if students == nil {
		students = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"students": students,
		"count":    len(students),
	})
}

// Enroll handles POST /api/v1/students (multipart: name + image).
func (h *StudentsHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	imageData, err := readImageUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.service.EnrollStudent(r.Context(), name, imageData); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"name":    name,
		"message": "Student '" + name + "' added.",
	})
}

// Remove handles DELETE /api/v1/students/{name}.
func (h *StudentsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.service.RemoveStudent(r.Context(), name); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"name":    name,
		"message": "Removed student '" + name + "'.",
	})
}
