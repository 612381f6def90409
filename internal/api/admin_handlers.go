package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/bardspeak/internal/errors"
	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
)

var allowedAudioExt = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".webm": true,
	".m4a":  true,
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	admin, err := s.AdminService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setSessionCookie(w, adminCookieName, admin.ID)
	writeJSON(w, r, http.StatusOK, map[string]any{"admin": admin})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.AdminService.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	activity, err := s.AdminService.RecentActivity(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	response := map[string]any{
		"stats":           stats,
		"recent_activity": activity,
	}
	if s.RenderPool != nil {
		response["render_queue"] = s.RenderPool.QueueSize()
	}
	writeJSON(w, r, http.StatusOK, response)
}

type biographyRequest struct {
	Title      string `json:"title"`
	PersonName string `json:"person_name"`
	Content    string `json:"content"`
	Profession string `json:"profession"`
}

func (s *Server) handleAdminCreateBiography(w http.ResponseWriter, r *http.Request) {
	var req biographyRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, err := s.ContentService.AddBiography(r.Context(), models.Biography{
		Title:      req.Title,
		PersonName: req.PersonName,
		Content:    req.Content,
		Profession: req.Profession,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleAdminUpdateBiography(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid biography id"))
		return
	}

	var req biographyRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ContentService.UpdateBiography(r.Context(), models.Biography{
		ID:         id,
		Title:      req.Title,
		PersonName: req.PersonName,
		Content:    req.Content,
		Profession: req.Profession,
	}); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAdminDeleteBiography(w http.ResponseWriter, r *http.Request) {
	admin := adminFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid biography id"))
		return
	}

	if err := s.ContentService.DeleteBiography(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("biography deleted: id=%d, admin=%s", id, admin.Username)
	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

// saveAudioFile stores an uploaded clip under the audio dir with a generated
// name and returns that name.
func (s *Server) saveAudioFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedAudioExt[ext] {
		return "", errors.NewValidationError("audio", "unsupported audio format")
	}

	if err := os.MkdirAll(s.AudioDir, 0o755); err != nil {
		return "", errors.NewInternalError(err)
	}

	name := fmt.Sprintf("clip_%d%s", time.Now().UnixNano(), ext)
	dst, err := os.Create(filepath.Join(s.AudioDir, name))
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", errors.NewInternalError(err)
	}
	return name, nil
}

func (s *Server) handleAdminCreateListening(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		handleError(w, r, errors.NewValidationError("audio", "audio file is required"))
		return
	}
	defer file.Close()

	audioFile, err := s.saveAudioFile(file, header)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("stored listening clip audio: %s", audioFile)

	id, err := s.ContentService.AddListeningClip(r.Context(), models.ListeningClip{
		Title:          r.FormValue("title"),
		AudioFile:      audioFile,
		Transcript:     r.FormValue("transcript"),
		RobotCharacter: r.FormValue("robot_character"),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleAdminUpdateListening(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid clip id"))
		return
	}

	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}

	existing, err := s.ContentService.ListeningClip(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// A new audio file replaces the stored one; otherwise keep it.
	audioFile := existing.AudioFile
	if file, header, err := r.FormFile("audio"); err == nil {
		defer file.Close()
		audioFile, err = s.saveAudioFile(file, header)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	if err := s.ContentService.UpdateListeningClip(r.Context(), models.ListeningClip{
		ID:             id,
		Title:          r.FormValue("title"),
		AudioFile:      audioFile,
		Transcript:     r.FormValue("transcript"),
		RobotCharacter: r.FormValue("robot_character"),
	}); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAdminDeleteListening(w http.ResponseWriter, r *http.Request) {
	admin := adminFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid clip id"))
		return
	}

	if err := s.ContentService.DeleteListeningClip(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("listening clip deleted: id=%d, admin=%s", id, admin.Username)
	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

type observationRequest struct {
	Title          string `json:"title"`
	VideoURL       string `json:"video_url"`
	Questions      string `json:"questions"`
	CorrectAnswers string `json:"correct_answers"`
}

func (s *Server) handleAdminCreateObservation(w http.ResponseWriter, r *http.Request) {
	var req observationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, err := s.ContentService.AddObservationItem(r.Context(), models.ObservationItem{
		Title:          req.Title,
		VideoURL:       req.VideoURL,
		Questions:      req.Questions,
		CorrectAnswers: req.CorrectAnswers,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleAdminUpdateObservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid item id"))
		return
	}

	var req observationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ContentService.UpdateObservationItem(r.Context(), models.ObservationItem{
		ID:             id,
		Title:          req.Title,
		VideoURL:       req.VideoURL,
		Questions:      req.Questions,
		CorrectAnswers: req.CorrectAnswers,
	}); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAdminDeleteObservation(w http.ResponseWriter, r *http.Request) {
	admin := adminFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid item id"))
		return
	}

	if err := s.ContentService.DeleteObservationItem(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("observation item deleted: id=%d, admin=%s", id, admin.Username)
	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

type writingTopicRequest struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

func (s *Server) handleAdminCreateWritingTopic(w http.ResponseWriter, r *http.Request) {
	var req writingTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, err := s.ContentService.AddWritingTopic(r.Context(), models.WritingTopic{
		Topic:       req.Topic,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{"id": id})
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Department  string  `json:"department"`
	DueDate     *string `json:"due_date"`
	IsActive    *bool   `json:"is_active"`
	ModuleType  string  `json:"module_type"`
	ContentID   int64   `json:"content_id"`
}

func (t taskRequest) toModel(id int64) models.Task {
	active := true
	if t.IsActive != nil {
		active = *t.IsActive
	}
	return models.Task{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		Department:  t.Department,
		DueDate:     t.DueDate,
		IsActive:    active,
		ModuleType:  t.ModuleType,
		ContentID:   t.ContentID,
	}
}

func (s *Server) handleAdminListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.ContentService.AllTasks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) handleAdminCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, err := s.ContentService.CreateTask(r.Context(), req.toModel(0))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleAdminUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid task id"))
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ContentService.UpdateTask(r.Context(), req.toModel(id)); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
