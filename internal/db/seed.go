package db

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"
)

// Seed creates the default admin account and sample practice content on a
// fresh database. Keyed on the admins table being empty so it runs once per
// installation.
func (db *DB) Seed(ctx context.Context) error {
	var admins int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&admins); err != nil {
		return err
	}
	if admins > 0 {
		db.log.Debug("seed skipped, admin account exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO admins (username, password_hash) VALUES (?, ?)`, "admin", string(hash)); err != nil {
		return err
	}
	if err := seedContent(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	db.log.Info("seeded default admin and sample content")
	return nil
}

func seedContent(ctx context.Context, tx *sql.Tx) error {
	biographies := []struct {
		title, personName, content, profession string
	}{
		{
			"MS Dhoni - The Captain Cool", "Mahendra Singh Dhoni",
			"Mahendra Singh Dhoni, known as Captain Cool, is one of the greatest cricket captains in history. Born on July 7, 1981, in Ranchi, Jharkhand, Dhoni rose from a small town to lead India to victory in the 2007 T20 World Cup, 2011 Cricket World Cup, and 2013 Champions Trophy. His calm demeanor under pressure and lightning-fast wicket-keeping skills made him a legend. Dhoni's leadership style was unique - he led by example, never panicked, and always believed in his team. Even in the most challenging situations, he maintained his composure and made strategic decisions that turned matches around.",
			"Cricketer",
		},
		{
			"Dr. APJ Abdul Kalam - The Missile Man", "Dr. APJ Abdul Kalam",
			"Dr. Avul Pakir Jainulabdeen Abdul Kalam, known as the Missile Man of India, was born on October 15, 1931, in Rameswaram, Tamil Nadu. From humble beginnings selling newspapers to becoming India's 11th President, Dr. Kalam's journey is truly inspiring. He played a pivotal role in India's space and missile programs, leading projects like Agni and Prithvi missiles. His vision for India as a developed nation by 2020 motivated millions. Dr. Kalam was not just a scientist but also a teacher who loved interacting with students. His simplicity, dedication to education, and unwavering belief in the power of dreams made him the People's President.",
			"Scientist",
		},
	}
	for _, b := range biographies {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO biographies (title, person_name, content, profession) VALUES (?, ?, ?, ?)`,
			b.title, b.personName, b.content, b.profession); err != nil {
			return err
		}
	}

	clips := []struct {
		title, audioFile, transcript, robotCharacter string
	}{
		{
			"Robot Greeting", "audio_greeting.mp3",
			"Hello there! Welcome to the Shakespeare Club Communication App. I am your friendly learning companion. Today we will practice listening skills together. Are you ready to begin this exciting journey of improving your English communication? Let's start with something fun and educational!",
			"boy",
		},
		{
			"Daily Motivation", "audio_motivation.mp3",
			"Good morning, dear students! Every day is a new opportunity to learn something amazing. Remember, communication is not just about speaking - it's about connecting with others, sharing ideas, and building relationships. Practice makes perfect, so keep working on your skills. You are capable of achieving great things!",
			"girl",
		},
	}
	for _, c := range clips {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO listening_clips (title, audio_file, transcript, robot_character) VALUES (?, ?, ?, ?)`,
			c.title, c.audioFile, c.transcript, c.robotCharacter); err != nil {
			return err
		}
	}

	items := []struct {
		title, videoURL, questions, answers string
	}{
		{
			"Success Mindset", "https://www.youtube.com/watch?v=motivational1",
			"What are the key points mentioned about achieving success? List three important qualities discussed in the video.",
			"Hard work, Perseverance, Positive attitude",
		},
		{
			"Communication Skills", "https://www.youtube.com/watch?v=communication1",
			"According to the video, what makes effective communication? Name two important elements.",
			"Active listening, Clear expression",
		},
	}
	for _, o := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO observation_items (title, video_url, questions, correct_answers) VALUES (?, ?, ?, ?)`,
			o.title, o.videoURL, o.questions, o.answers); err != nil {
			return err
		}
	}

	topics := []struct {
		topic, description string
	}{
		{"My Dreams and Aspirations", "Write about your future goals and how you plan to achieve them."},
		{"The Importance of Communication", "Explain why good communication skills are essential in today's world."},
		{"A Person Who Inspires Me", "Describe someone who motivates you and explain why they are your inspiration."},
	}
	for _, t := range topics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO writing_topics (topic, description) VALUES (?, ?)`,
			t.topic, t.description); err != nil {
			return err
		}
	}

	return nil
}
