package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/services"
	"github.com/vytor/bardspeak/internal/worker"
)

type Server struct {
	UserService        services.UserService
	AdminService       services.AdminService
	PracticeService    services.PracticeService
	ContentService     services.ContentService
	StatsService       services.StatsService
	CertificateService services.CertificateService
	DB                 *sql.DB
	RenderPool         *worker.Pool
	AudioDir           string
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}
