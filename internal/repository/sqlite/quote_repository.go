package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/bardspeak/internal/logger"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
)

type quoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository implementation
func NewQuoteRepository(db *sql.DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Get(ctx context.Context, id int64) (*models.DailyQuote, error) {
	log := logger.FromContext(ctx).WithPrefix("quote_repo")
	log.Debug("getting quote: id=%d", id)

	var q models.DailyQuote
	err := r.db.QueryRowContext(ctx, `
SELECT id, quote, author, posted_by, department, post_date, is_featured, created_at
FROM daily_quotes
WHERE id = ?
`, id).Scan(&q.ID, &q.Quote, &q.Author, &q.PostedBy, &q.Department, &q.PostDate, &q.IsFeatured, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("quote not found: id=%d", id)
		} else {
			log.Error("failed to get quote: %v", err)
		}
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepository) Insert(ctx context.Context, q models.DailyQuote) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("quote_repo")
	log.Debug("inserting quote: posted_by=%d, post_date=%s, featured=%t", q.PostedBy, q.PostDate, q.IsFeatured)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO daily_quotes (quote, author, posted_by, department, post_date, is_featured)
VALUES (?, ?, ?, ?, ?, ?)
`, q.Quote, q.Author, q.PostedBy, q.Department, q.PostDate, q.IsFeatured)
	if err != nil {
		log.Error("failed to insert quote: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *quoteRepository) UserQuoteExists(ctx context.Context, userID int64, postDate string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("quote_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM daily_quotes WHERE posted_by = ? AND post_date = ?
`, userID, postDate).Scan(&count)
	if err != nil {
		log.Error("failed to check user quote: %v", err)
		return false, err
	}
	return count > 0, nil
}

func (r *quoteRepository) CountDepartmentQuotes(ctx context.Context, department, postDate string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("quote_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM daily_quotes WHERE department = ? AND post_date = ?
`, department, postDate).Scan(&count)
	if err != nil {
		log.Error("failed to count department quotes: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *quoteRepository) ListForDate(ctx context.Context, postDate string) ([]models.QuoteWithAuthor, error) {
	log := logger.FromContext(ctx).WithPrefix("quote_repo")
	log.Debug("listing quotes: post_date=%s", postDate)

	rows, err := r.db.QueryContext(ctx, `
SELECT q.id, q.quote, q.author, q.posted_by, q.department, q.post_date, q.is_featured, q.created_at, u.username
FROM daily_quotes q
JOIN users u ON u.id = q.posted_by
WHERE q.post_date = ?
ORDER BY q.is_featured DESC, q.created_at
`, postDate)
	if err != nil {
		log.Error("failed to list quotes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var quotes []models.QuoteWithAuthor
	for rows.Next() {
		var q models.QuoteWithAuthor
		if err := rows.Scan(&q.ID, &q.Quote, &q.Author, &q.PostedBy, &q.Department, &q.PostDate, &q.IsFeatured, &q.CreatedAt, &q.PostedByName); err != nil {
			log.Error("failed to scan quote row: %v", err)
			return nil, err
		}
		quotes = append(quotes, q)
	}
	log.Debug("found %d quotes", len(quotes))
	return quotes, rows.Err()
}

func (r *quoteRepository) FeaturedForDate(ctx context.Context, postDate string) (*models.QuoteWithAuthor, error) {
	log := logger.FromContext(ctx).WithPrefix("quote_repo")
	log.Debug("getting featured quote: post_date=%s", postDate)

	var q models.QuoteWithAuthor
	err := r.db.QueryRowContext(ctx, `
SELECT q.id, q.quote, q.author, q.posted_by, q.department, q.post_date, q.is_featured, q.created_at, u.username
FROM daily_quotes q
JOIN users u ON u.id = q.posted_by
WHERE q.post_date = ? AND q.is_featured = 1
ORDER BY q.created_at
LIMIT 1
`, postDate).Scan(&q.ID, &q.Quote, &q.Author, &q.PostedBy, &q.Department, &q.PostDate, &q.IsFeatured, &q.CreatedAt, &q.PostedByName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no featured quote: post_date=%s", postDate)
		} else {
			log.Error("failed to get featured quote: %v", err)
		}
		return nil, err
	}
	return &q, nil
}
