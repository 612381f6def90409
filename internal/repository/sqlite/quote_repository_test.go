package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/bardspeak/internal/models"
	"github.com/vytor/bardspeak/internal/repository"
	"github.com/vytor/bardspeak/internal/repository/sqlite"
	"github.com/vytor/bardspeak/internal/testutil"
)

type QuoteRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.QuoteRepository
}

func (s *QuoteRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewQuoteRepository(s.db)
}

func (s *QuoteRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *QuoteRepositorySuite) createUser(username, department string) int64 {
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, register_number, department) VALUES (?, ?, ?)
	`, username, "RN-"+username, department)
	s.Require().NoError(err)

	var userID int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&userID)
	s.Require().NoError(err)
	return userID
}

func (s *QuoteRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	userID := s.createUser("priya", "CSE")

	id, err := s.repo.Insert(ctx, models.DailyQuote{
		Quote:      "All the world's a stage.",
		Author:     "William Shakespeare",
		PostedBy:   userID,
		Department: "CSE",
		PostDate:   "2025-06-10",
		IsFeatured: true,
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	quote, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("All the world's a stage.", quote.Quote)
	s.Assert().Equal("William Shakespeare", quote.Author)
	s.Assert().True(quote.IsFeatured)
}

func (s *QuoteRepositorySuite) TestUserQuoteExists() {
	ctx := context.Background()
	userID := s.createUser("priya", "CSE")

	exists, err := s.repo.UserQuoteExists(ctx, userID, "2025-06-10")
	s.Require().NoError(err)
	s.Assert().False(exists)

	_, err = s.repo.Insert(ctx, models.DailyQuote{
		Quote: "Brevity is the soul of wit.", PostedBy: userID, Department: "CSE", PostDate: "2025-06-10",
	})
	s.Require().NoError(err)

	exists, err = s.repo.UserQuoteExists(ctx, userID, "2025-06-10")
	s.Require().NoError(err)
	s.Assert().True(exists)

	// A quote on another day does not count for today.
	exists, err = s.repo.UserQuoteExists(ctx, userID, "2025-06-11")
	s.Require().NoError(err)
	s.Assert().False(exists)
}

func (s *QuoteRepositorySuite) TestCountDepartmentQuotes() {
	ctx := context.Background()
	priyaID := s.createUser("priya", "CSE")
	arunID := s.createUser("arun", "CSE")
	deviID := s.createUser("devi", "ECE")

	for userID, department := range map[int64]string{priyaID: "CSE", arunID: "CSE", deviID: "ECE"} {
		_, err := s.repo.Insert(ctx, models.DailyQuote{
			Quote: "quote", PostedBy: userID, Department: department, PostDate: "2025-06-10",
		})
		s.Require().NoError(err)
	}

	count, err := s.repo.CountDepartmentQuotes(ctx, "CSE", "2025-06-10")
	s.Require().NoError(err)
	s.Assert().Equal(2, count)

	count, err = s.repo.CountDepartmentQuotes(ctx, "ECE", "2025-06-10")
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *QuoteRepositorySuite) TestListAndFeaturedForDate() {
	ctx := context.Background()
	priyaID := s.createUser("priya", "CSE")
	arunID := s.createUser("arun", "ECE")

	_, err := s.repo.Insert(ctx, models.DailyQuote{
		Quote: "featured", PostedBy: priyaID, Department: "CSE", PostDate: "2025-06-10", IsFeatured: true,
	})
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, models.DailyQuote{
		Quote: "plain", PostedBy: arunID, Department: "ECE", PostDate: "2025-06-10",
	})
	s.Require().NoError(err)

	quotes, err := s.repo.ListForDate(ctx, "2025-06-10")
	s.Require().NoError(err)
	s.Require().Len(quotes, 2)
	s.Assert().Equal("featured", quotes[0].Quote)
	s.Assert().Equal("priya", quotes[0].PostedByName)

	featured, err := s.repo.FeaturedForDate(ctx, "2025-06-10")
	s.Require().NoError(err)
	s.Assert().Equal("featured", featured.Quote)
	s.Assert().Equal("priya", featured.PostedByName)

	_, err = s.repo.FeaturedForDate(ctx, "2025-06-11")
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func TestQuoteRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuoteRepositorySuite))
}
