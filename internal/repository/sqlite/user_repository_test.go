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

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.User{
		Username:       "priya",
		RegisterNumber: "21CS042",
		Department:     "CSE",
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	user, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("priya", user.Username)
	s.Assert().Equal("21CS042", user.RegisterNumber)
	s.Assert().Equal(0, user.TotalPoints)
	s.Assert().Equal(0, user.CurrentStreak)

	byRegister, err := s.repo.GetByRegisterNumber(ctx, "21CS042")
	s.Require().NoError(err)
	s.Assert().Equal(id, byRegister.ID)

	byName, err := s.repo.GetByUsername(ctx, "priya")
	s.Require().NoError(err)
	s.Assert().Equal(id, byName.ID)
}

func (s *UserRepositorySuite) TestGet_NotFound() {
	ctx := context.Background()

	user, err := s.repo.Get(ctx, 99999)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
	s.Assert().Nil(user)
}

func (s *UserRepositorySuite) TestInsert_DuplicateRegisterNumber() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, models.User{Username: "priya", RegisterNumber: "21CS042", Department: "CSE"})
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, models.User{Username: "arun", RegisterNumber: "21CS042", Department: "CSE"})
	s.Assert().Error(err)
}

func (s *UserRepositorySuite) TestUpdateProfile() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.User{Username: "priya", RegisterNumber: "21CS042", Department: "CSE"})
	s.Require().NoError(err)

	err = s.repo.UpdateProfile(ctx, id, "priya_s", "ECE")
	s.Require().NoError(err)

	user, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("priya_s", user.Username)
	s.Assert().Equal("ECE", user.Department)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
