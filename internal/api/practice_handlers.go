package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
)

// maxAudioUpload caps recorded speaking audio at 16 MB.
const maxAudioUpload = 16 << 20

func (s *Server) handleSpeakingCatalog(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	biographies, completed, err := s.ContentService.SpeakingCatalog(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"biographies":   biographies,
		"completed_ids": completed,
	})
}

func (s *Server) handleBiography(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid biography id"))
		return
	}

	bio, err := s.ContentService.Biography(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, bio)
}

type speakingSubmission struct {
	RecordedText string `json:"recorded_text"`
}

func (s *Server) handleSpeakingSubmit(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid biography id"))
		return
	}

	var req speakingSubmission
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PracticeService.SubmitSpeaking(r.Context(), user.ID, id, req.RecordedText)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleSpeakingAudio(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid biography id"))
		return
	}

	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}

	var audio []byte
	var mimeType string
	file, header, err := r.FormFile("audio")
	if err == nil {
		defer file.Close()
		audio, err = io.ReadAll(io.LimitReader(file, maxAudioUpload))
		if err != nil {
			log.Error("failed to read audio upload: %v", err)
			handleError(w, r, errors.NewInternalError(err))
			return
		}
		mimeType = header.Header.Get("Content-Type")
	} else if err != http.ErrMissingFile {
		handleError(w, r, errors.NewBadRequestError("invalid audio upload"))
		return
	}

	result, err := s.PracticeService.SubmitSpeakingAudio(r.Context(), user.ID, id, audio, mimeType, r.FormValue("recorded_text"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleListeningCatalog(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	clips, completed, err := s.ContentService.ListeningCatalog(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"clips":         clips,
		"completed_ids": completed,
	})
}

func (s *Server) handleListeningClip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid clip id"))
		return
	}

	clip, err := s.ContentService.ListeningClip(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, clip)
}

type listeningSubmission struct {
	UserText string `json:"user_text"`
}

func (s *Server) handleListeningSubmit(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid clip id"))
		return
	}

	var req listeningSubmission
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PracticeService.SubmitListening(r.Context(), user.ID, id, req.UserText)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleObservationCatalog(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	items, completed, err := s.ContentService.ObservationCatalog(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"items":         items,
		"completed_ids": completed,
	})
}

func (s *Server) handleObservationItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid item id"))
		return
	}

	item, err := s.ContentService.ObservationItem(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, item)
}

type observationSubmission struct {
	Answer string `json:"answer"`
}

func (s *Server) handleObservationSubmit(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid item id"))
		return
	}

	var req observationSubmission
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PracticeService.SubmitObservation(r.Context(), user.ID, id, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleWritingCatalog(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	catalog, err := s.ContentService.WritingCatalog(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, catalog)
}

type quotePost struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

func (s *Server) handleQuotePost(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req quotePost
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PracticeService.PostQuote(r.Context(), user.ID, req.Quote, req.Author)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, result)
}

type quoteResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleQuoteRespond(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid quote id"))
		return
	}

	var req quoteResponse
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PracticeService.RespondToQuote(r.Context(), user.ID, id, req.Response)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}
