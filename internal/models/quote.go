package models

import "time"

type DailyQuote struct {
	ID         int64     `json:"id"`
	Quote      string    `json:"quote"`
	Author     string    `json:"author"`
	PostedBy   int64     `json:"posted_by"`
	Department string    `json:"department"`
	PostDate   string    `json:"post_date"` // "2006-01-02", server-local
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuoteWithAuthor struct {
	DailyQuote
	PostedByName string `json:"posted_by_name"`
}

// WritingCatalog is the writing module listing: the topic catalog plus
// today's quote wall and whether the caller already posted today.
type WritingCatalog struct {
	Topics        []WritingTopic    `json:"topics"`
	TodaysQuotes  []QuoteWithAuthor `json:"todays_quotes"`
	AlreadyPosted bool              `json:"already_posted"`
}

type QuotePostResult struct {
	Quote               DailyQuote `json:"quote"`
	Points              int        `json:"points"`
	CurrentStreak       int        `json:"current_streak"`
	CertificateUnlocked bool       `json:"certificate_unlocked"`
}
