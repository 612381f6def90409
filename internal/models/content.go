package models

import "time"

const (
	ModuleSpeaking    = "speaking"
	ModuleListening   = "listening"
	ModuleWriting     = "writing"
	ModuleObservation = "observation"
)

// ModuleKinds lists every practice module; completing one item of each
// unlocks the certificate.
var ModuleKinds = []string{ModuleSpeaking, ModuleListening, ModuleWriting, ModuleObservation}

func ValidModuleKind(kind string) bool {
	switch kind {
	case ModuleSpeaking, ModuleListening, ModuleWriting, ModuleObservation:
		return true
	}
	return false
}

type Biography struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	PersonName string    `json:"person_name"`
	Content    string    `json:"content"`
	Profession string    `json:"profession"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListeningClip struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	AudioFile      string    `json:"audio_file"`
	Transcript     string    `json:"transcript"`
	RobotCharacter string    `json:"robot_character"` // "boy" or "girl"
	CreatedAt      time.Time `json:"created_at"`
}

type ObservationItem struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	VideoURL       string    `json:"video_url"`
	Questions      string    `json:"questions"`
	CorrectAnswers string    `json:"correct_answers"`
	CreatedAt      time.Time `json:"created_at"`
}

type WritingTopic struct {
	ID          int64     `json:"id"`
	Topic       string    `json:"topic"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
