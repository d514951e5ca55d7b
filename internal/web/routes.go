package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-attendance/internal/web/handlers"
)

func (s *Server) setupRoutes(csvPath string) {
	attendanceHandler := handlers.NewAttendanceHandler(s.service)
	studentsHandler := handlers.NewStudentsHandler(s.service)
	sessionsHandler := handlers.NewSessionsHandler(s.service, csvPath)
	galleryHandler := handlers.NewGalleryHandler(s.service)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Attendance
		r.Post("/attendance/login", attendanceHandler.Login)
		r.Post("/attendance/logoff", attendanceHandler.Logoff)

		// Sessions
		r.Get("/sessions", sessionsHandler.List)
		r.Get("/sessions/export", sessionsHandler.Export)

		// Students
		r.Get("/students", studentsHandler.List)
		r.Post("/students", studentsHandler.Enroll)
		r.Delete("/students/{name}", studentsHandler.Remove)

		// Gallery
		r.Post("/gallery/rebuild", galleryHandler.Rebuild)
	})
}
