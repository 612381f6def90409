package api

import (
	"net/http"

	"github.com/vytor/bardspeak/internal/logger"
)

func (s *Server) handleCertificateStatus(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	status, err := s.CertificateService.Status(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, status)
}

func (s *Server) handleCertificateDownload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	png, err := s.CertificateService.Certificate(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="shakespeare_club_certificate.png"`)
	if _, err := w.Write(png); err != nil {
		log.Error("failed to write certificate: %v", err)
	}
}
