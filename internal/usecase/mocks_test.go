package usecase

import (
	"context"

	"muse/internal/data/entity"
	"muse/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.SessionUser, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.SessionUser)
	return session, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockMovieRepo struct{ mock.Mock }

func (m *mockMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*entity.Movie)
	return movie, args.Error(1)
}

func (m *mockMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMovieRepo) FindAll(ctx context.Context, filter repository.MovieFilter) ([]*entity.Movie, error) {
	args := m.Called(ctx, filter)
	movies, _ := args.Get(0).([]*entity.Movie)
	return movies, args.Error(1)
}

type mockGenreRepo struct{ mock.Mock }

func (m *mockGenreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *mockGenreRepo) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	args := m.Called(ctx, id)
	genre, _ := args.Get(0).(*entity.Genre)
	return genre, args.Error(1)
}

func (m *mockGenreRepo) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]*entity.Genre)
	return genres, args.Error(1)
}

func (m *mockGenreRepo) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Genre, error) {
	args := m.Called(ctx, movieID)
	genres, _ := args.Get(0).([]*entity.Genre)
	return genres, args.Error(1)
}

func (m *mockGenreRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockMovieGenreRepo struct{ mock.Mock }

func (m *mockMovieGenreRepo) DeleteByMovieID(ctx context.Context, movieID int64) error {
	return m.Called(ctx, movieID).Error(0)
}

func (m *mockMovieGenreRepo) CreateBatch(ctx context.Context, movieGenres []*entity.MovieGenre) error {
	return m.Called(ctx, movieGenres).Error(0)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*entity.Review)
	return review, args.Error(1)
}

func (m *mockReviewRepo) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Review, error) {
	args := m.Called(ctx, movieID)
	reviews, _ := args.Get(0).([]*entity.Review)
	return reviews, args.Error(1)
}

func (m *mockReviewRepo) FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Review, error) {
	args := m.Called(ctx, userID, movieID)
	review, _ := args.Get(0).(*entity.Review)
	return review, args.Error(1)
}

func (m *mockReviewRepo) FindAll(ctx context.Context, filter repository.ReviewFilter) ([]*entity.Review, error) {
	args := m.Called(ctx, filter)
	reviews, _ := args.Get(0).([]*entity.Review)
	return reviews, args.Error(1)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSet struct {
	user       *mockUserRepo
	session    *mockSessionRepo
	movie      *mockMovieRepo
	genre      *mockGenreRepo
	movieGenre *mockMovieGenreRepo
	review     *mockReviewRepo
}

// newMockRepository returns a Repository without a database, so WithTx
// runs its callback against the same mocks.
func newMockRepository() (*repository.Repository, *mockSet) {
	m := &mockSet{
		user:       &mockUserRepo{},
		session:    &mockSessionRepo{},
		movie:      &mockMovieRepo{},
		genre:      &mockGenreRepo{},
		movieGenre: &mockMovieGenreRepo{},
		review:     &mockReviewRepo{},
	}
	return &repository.Repository{
		User:       m.user,
		Session:    m.session,
		Movie:      m.movie,
		Genre:      m.genre,
		MovieGenre: m.movieGenre,
		Review:     m.review,
	}, m
}
