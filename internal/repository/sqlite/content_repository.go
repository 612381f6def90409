package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new ContentRepository implementation
func NewContentRepository(db *sql.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ListBiographies(ctx context.Context) ([]models.Biography, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing biographies")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, person_name, content, profession, created_at
FROM biographies
ORDER BY id
`)
	if err != nil {
		log.Error("failed to list biographies: %v", err)
		return nil, err
	}
	defer rows.Close()

	var bios []models.Biography
	for rows.Next() {
		var b models.Biography
		if err := rows.Scan(&b.ID, &b.Title, &b.PersonName, &b.Content, &b.Profession, &b.CreatedAt); err != nil {
			log.Error("failed to scan biography row: %v", err)
			return nil, err
		}
		bios = append(bios, b)
	}
	log.Debug("found %d biographies", len(bios))
	return bios, rows.Err()
}

func (r *contentRepository) GetBiography(ctx context.Context, id int64) (*models.Biography, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("getting biography: id=%d", id)

	var b models.Biography
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, person_name, content, profession, created_at
FROM biographies
WHERE id = ?
`, id).Scan(&b.ID, &b.Title, &b.PersonName, &b.Content, &b.Profession, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("biography not found: id=%d", id)
		} else {
			log.Error("failed to get biography: %v", err)
		}
		return nil, err
	}
	return &b, nil
}

func (r *contentRepository) InsertBiography(ctx context.Context, b models.Biography) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("inserting biography: title=%s", b.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO biographies (title, person_name, content, profession)
VALUES (?, ?, ?, ?)
`, b.Title, b.PersonName, b.Content, b.Profession)
	if err != nil {
		log.Error("failed to insert biography: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *contentRepository) UpdateBiography(ctx context.Context, b models.Biography) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("updating biography: id=%d", b.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE biographies
SET title = ?, person_name = ?, content = ?, profession = ?
WHERE id = ?
`, b.Title, b.PersonName, b.Content, b.Profession, b.ID)
	if err != nil {
		log.Error("failed to update biography: %v", err)
	}
	return err
}

func (r *contentRepository) DeleteBiography(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("deleting biography: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM biographies WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete biography: %v", err)
	}
	return err
}

func (r *contentRepository) ListListeningClips(ctx context.Context) ([]models.ListeningClip, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing listening clips")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, audio_file, transcript, robot_character, created_at
FROM listening_clips
ORDER BY id
`)
	if err != nil {
		log.Error("failed to list listening clips: %v", err)
		return nil, err
	}
	defer rows.Close()

	var clips []models.ListeningClip
	for rows.Next() {
		var c models.ListeningClip
		if err := rows.Scan(&c.ID, &c.Title, &c.AudioFile, &c.Transcript, &c.RobotCharacter, &c.CreatedAt); err != nil {
			log.Error("failed to scan listening clip row: %v", err)
			return nil, err
		}
		clips = append(clips, c)
	}
	log.Debug("found %d listening clips", len(clips))
	return clips, rows.Err()
}

func (r *contentRepository) GetListeningClip(ctx context.Context, id int64) (*models.ListeningClip, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("getting listening clip: id=%d", id)

	var c models.ListeningClip
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, audio_file, transcript, robot_character, created_at
FROM listening_clips
WHERE id = ?
`, id).Scan(&c.ID, &c.Title, &c.AudioFile, &c.Transcript, &c.RobotCharacter, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("listening clip not found: id=%d", id)
		} else {
			log.Error("failed to get listening clip: %v", err)
		}
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) InsertListeningClip(ctx context.Context, c models.ListeningClip) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("inserting listening clip: title=%s, audio_file=%s", c.Title, c.AudioFile)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO listening_clips (title, audio_file, transcript, robot_character)
VALUES (?, ?, ?, ?)
`, c.Title, c.AudioFile, c.Transcript, c.RobotCharacter)
	if err != nil {
		log.Error("failed to insert listening clip: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *contentRepository) UpdateListeningClip(ctx context.Context, c models.ListeningClip) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("updating listening clip: id=%d", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE listening_clips
SET title = ?, audio_file = ?, transcript = ?, robot_character = ?
WHERE id = ?
`, c.Title, c.AudioFile, c.Transcript, c.RobotCharacter, c.ID)
	if err != nil {
		log.Error("failed to update listening clip: %v", err)
	}
	return err
}

func (r *contentRepository) DeleteListeningClip(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("deleting listening clip: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM listening_clips WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete listening clip: %v", err)
	}
	return err
}

func (r *contentRepository) ListObservationItems(ctx context.Context) ([]models.ObservationItem, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing observation items")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, video_url, questions, correct_answers, created_at
FROM observation_items
ORDER BY id
`)
	if err != nil {
		log.Error("failed to list observation items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.ObservationItem
	for rows.Next() {
		var o models.ObservationItem
		if err := rows.Scan(&o.ID, &o.Title, &o.VideoURL, &o.Questions, &o.CorrectAnswers, &o.CreatedAt); err != nil {
			log.Error("failed to scan observation item row: %v", err)
			return nil, err
		}
		items = append(items, o)
	}
	log.Debug("found %d observation items", len(items))
	return items, rows.Err()
}

func (r *contentRepository) GetObservationItem(ctx context.Context, id int64) (*models.ObservationItem, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("getting observation item: id=%d", id)

	var o models.ObservationItem
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, video_url, questions, correct_answers, created_at
FROM observation_items
WHERE id = ?
`, id).Scan(&o.ID, &o.Title, &o.VideoURL, &o.Questions, &o.CorrectAnswers, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("observation item not found: id=%d", id)
		} else {
			log.Error("failed to get observation item: %v", err)
		}
		return nil, err
	}
	return &o, nil
}

func (r *contentRepository) InsertObservationItem(ctx context.Context, o models.ObservationItem) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("inserting observation item: title=%s", o.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO observation_items (title, video_url, questions, correct_answers)
VALUES (?, ?, ?, ?)
`, o.Title, o.VideoURL, o.Questions, o.CorrectAnswers)
	if err != nil {
		log.Error("failed to insert observation item: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *contentRepository) UpdateObservationItem(ctx context.Context, o models.ObservationItem) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("updating observation item: id=%d", o.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE observation_items
SET title = ?, video_url = ?, questions = ?, correct_answers = ?
WHERE id = ?
`, o.Title, o.VideoURL, o.Questions, o.CorrectAnswers, o.ID)
	if err != nil {
		log.Error("failed to update observation item: %v", err)
	}
	return err
}

func (r *contentRepository) DeleteObservationItem(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("deleting observation item: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM observation_items WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete observation item: %v", err)
	}
	return err
}

func (r *contentRepository) ListWritingTopics(ctx context.Context) ([]models.WritingTopic, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing writing topics")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, topic, description, created_at
FROM writing_topics
ORDER BY id
`)
	if err != nil {
		log.Error("failed to list writing topics: %v", err)
		return nil, err
	}
	defer rows.Close()

	var topics []models.WritingTopic
	for rows.Next() {
		var t models.WritingTopic
		if err := rows.Scan(&t.ID, &t.Topic, &t.Description, &t.CreatedAt); err != nil {
			log.Error("failed to scan writing topic row: %v", err)
			return nil, err
		}
		topics = append(topics, t)
	}
	log.Debug("found %d writing topics", len(topics))
	return topics, rows.Err()
}

func (r *contentRepository) InsertWritingTopic(ctx context.Context, t models.WritingTopic) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("inserting writing topic: topic=%s", t.Topic)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO writing_topics (topic, description)
VALUES (?, ?)
`, t.Topic, t.Description)
	if err != nil {
		log.Error("failed to insert writing topic: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}
