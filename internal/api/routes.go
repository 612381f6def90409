package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Post("/admin/login", s.handleAdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/dashboard", s.handleDashboard)
			r.Get("/profile", s.handleProfile)
			r.Put("/profile", s.handleUpdateProfile)
			r.Get("/leaderboard", s.handleLeaderboard)
			r.Get("/tasks", s.handleTasks)

			r.Get("/speaking", s.handleSpeakingCatalog)
			r.Get("/speaking/{id}", s.handleBiography)
			r.Post("/speaking/{id}/submit", s.handleSpeakingSubmit)
			r.Post("/speaking/{id}/audio", s.handleSpeakingAudio)

			r.Get("/listening", s.handleListeningCatalog)
			r.Get("/listening/{id}", s.handleListeningClip)
			r.Post("/listening/{id}/submit", s.handleListeningSubmit)

			r.Get("/observation", s.handleObservationCatalog)
			r.Get("/observation/{id}", s.handleObservationItem)
			r.Post("/observation/{id}/submit", s.handleObservationSubmit)

			r.Get("/writing", s.handleWritingCatalog)
			r.Post("/writing/quotes", s.handleQuotePost)
			r.Post("/writing/quotes/{id}/respond", s.handleQuoteRespond)

			r.Get("/certificate", s.handleCertificateStatus)
			r.Get("/certificate/download", s.handleCertificateDownload)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/admin/stats", s.handleAdminStats)

			r.Post("/admin/speaking", s.handleAdminCreateBiography)
			r.Put("/admin/speaking/{id}", s.handleAdminUpdateBiography)
			r.Delete("/admin/speaking/{id}", s.handleAdminDeleteBiography)

			r.Post("/admin/listening", s.handleAdminCreateListening)
			r.Put("/admin/listening/{id}", s.handleAdminUpdateListening)
			r.Delete("/admin/listening/{id}", s.handleAdminDeleteListening)

			r.Post("/admin/observation", s.handleAdminCreateObservation)
			r.Put("/admin/observation/{id}", s.handleAdminUpdateObservation)
			r.Delete("/admin/observation/{id}", s.handleAdminDeleteObservation)

			r.Post("/admin/writing-topics", s.handleAdminCreateWritingTopic)

			r.Get("/admin/tasks", s.handleAdminListTasks)
			r.Post("/admin/tasks", s.handleAdminCreateTask)
			r.Put("/admin/tasks/{id}", s.handleAdminUpdateTask)
		})
	})

	r.Handle("/static/audio/*", http.StripPrefix("/static/audio/", http.FileServer(http.Dir(s.AudioDir))))
	return r
}
