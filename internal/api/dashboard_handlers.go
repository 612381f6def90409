package api

import (
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	dashboard, err := s.StatsService.Dashboard(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dashboard)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.StatsService.Leaderboard(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"leaderboard": entries})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	tasks, err := s.ContentService.TasksForUser(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"tasks": tasks})
}
