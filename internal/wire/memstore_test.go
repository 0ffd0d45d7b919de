package wire_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"muse/internal/data/entity"
	"muse/internal/data/repository"
	"muse/pkg/apperror"

	"github.com/google/uuid"
)

// memStore backs every repository with maps so the router can be driven
// end to end without PostgreSQL.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*entity.User
	sessions    map[uuid.UUID]*entity.Session
	genres      map[int64]*entity.Genre
	movies      map[int64]*entity.Movie
	movieGenres map[entity.MovieGenre]struct{}
	reviews     map[int64]*entity.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[int64]*entity.User{},
		sessions:    map[uuid.UUID]*entity.Session{},
		genres:      map[int64]*entity.Genre{},
		movies:      map[int64]*entity.Movie{},
		movieGenres: map[entity.MovieGenre]struct{}{},
		reviews:     map[int64]*entity.Review{},
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:       memUsers{s},
		Session:    memSessions{s},
		Movie:      memMovies{s},
		Genre:      memGenres{s},
		MovieGenre: memMovieGenres{s},
		Review:     memReviews{s},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// ==================== USERS ====================

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return apperror.Validation("Please correct the errors below.", map[string]string{
				"username": "A user with that username already exists",
			})
		}
	}
	user.ID = r.s.id()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindAll(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(r.s.users, id)
	for key, review := range r.s.reviews {
		if review.UserID == id {
			delete(r.s.reviews, key)
		}
	}
	return nil
}

// ==================== SESSIONS ====================

type memSessions struct{ s *memStore }

func (r memSessions) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *session
	r.s.sessions[session.Token] = &cp
	return nil
}

func (r memSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.SessionUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil || !session.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	user, ok := r.s.users[session.UserID]
	if !ok || !user.IsActive {
		return nil, nil
	}
	return &entity.SessionUser{Session: *session, Username: user.Username, Role: user.Role}, nil
}

func (r memSessions) Revoke(_ context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session, ok := r.s.sessions[token]; ok && session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r memSessions) CleanExpiredSessions(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for token, session := range r.s.sessions {
		if session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}

// ==================== GENRES ====================

type memGenres struct{ s *memStore }

func (r memGenres) Create(_ context.Context, genre *entity.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.genres {
		if g.Name == genre.Name {
			return apperror.Conflict("Genre \"" + genre.Name + "\" already exists")
		}
	}
	genre.ID = r.s.id()
	cp := *genre
	r.s.genres[genre.ID] = &cp
	return nil
}

func (r memGenres) FindByID(_ context.Context, id int64) (*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g, ok := r.s.genres[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r memGenres) FindAll(_ context.Context) ([]*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Genre
	for _, g := range r.s.genres {
		cp := *g
		out = append(out, &cp)
	}
	sortGenres(out)
	return out, nil
}

func (r memGenres) FindByMovieID(_ context.Context, movieID int64) ([]*entity.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Genre
	for link := range r.s.movieGenres {
		if link.MovieID == movieID {
			cp := *r.s.genres[link.GenreID]
			out = append(out, &cp)
		}
	}
	sortGenres(out)
	return out, nil
}

func (r memGenres) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.genres[id]; !ok {
		return apperror.NotFound("genre", id)
	}
	delete(r.s.genres, id)
	for link := range r.s.movieGenres {
		if link.GenreID == id {
			delete(r.s.movieGenres, link)
		}
	}
	return nil
}

func sortGenres(genres []*entity.Genre) {
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
}

type memMovieGenres struct{ s *memStore }

func (r memMovieGenres) DeleteByMovieID(_ context.Context, movieID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for link := range r.s.movieGenres {
		if link.MovieID == movieID {
			delete(r.s.movieGenres, link)
		}
	}
	return nil
}

func (r memMovieGenres) CreateBatch(_ context.Context, links []*entity.MovieGenre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, link := range links {
		r.s.movieGenres[*link] = struct{}{}
	}
	return nil
}

// ==================== MOVIES ====================

type memMovies struct{ s *memStore }

// withStats copies movie and fills the derived rating fields. Caller holds the lock.
func (r memMovies) withStats(movie *entity.Movie) *entity.Movie {
	cp := *movie
	var reviews []*entity.Review
	for _, review := range r.s.reviews {
		if review.MovieID == movie.ID {
			reviews = append(reviews, review)
		}
	}
	cp.ApplyReviewStats(reviews)
	return &cp
}

func (r memMovies) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	movie.ID = r.s.id()
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r memMovies) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.movies[id]; ok {
		return r.withStats(m), nil
	}
	return nil, nil
}

func (r memMovies) FindAll(_ context.Context, filter repository.MovieFilter) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*entity.Movie
	for _, m := range r.s.movies {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Title), search) &&
			!strings.Contains(strings.ToLower(m.Director), search) &&
			!strings.Contains(strings.ToLower(m.Description), search) {
			continue
		}
		if filter.Genre != "" && !r.hasGenre(m.ID, filter.Genre) {
			continue
		}
		out = append(out, r.withStats(m))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReleaseYear.Equal(out[j].ReleaseYear) {
			return out[i].ReleaseYear.After(out[j].ReleaseYear)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (r memMovies) hasGenre(movieID int64, name string) bool {
	for link := range r.s.movieGenres {
		if link.MovieID == movieID && r.s.genres[link.GenreID].Name == name {
			return true
		}
	}
	return false
}

func (r memMovies) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[movie.ID]; !ok {
		return apperror.NotFound("movie", movie.ID)
	}
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r memMovies) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return apperror.NotFound("movie", id)
	}
	delete(r.s.movies, id)
	for key, review := range r.s.reviews {
		if review.MovieID == id {
			delete(r.s.reviews, key)
		}
	}
	return nil
}

// ==================== REVIEWS ====================

type memReviews struct{ s *memStore }

// joined copies review with username and movie title. Caller holds the lock.
func (r memReviews) joined(review *entity.Review) *entity.Review {
	cp := *review
	if u, ok := r.s.users[review.UserID]; ok {
		cp.Username = u.Username
	}
	if m, ok := r.s.movies[review.MovieID]; ok {
		cp.MovieTitle = m.Title
	}
	return &cp
}

func (r memReviews) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.MovieID == review.MovieID && existing.UserID == review.UserID {
			return apperror.Conflict(repository.DuplicateReviewMessage)
		}
	}
	review.ID = r.s.id()
	cp := *review
	r.s.reviews[review.ID] = &cp
	return nil
}

func (r memReviews) FindByID(_ context.Context, id int64) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if review, ok := r.s.reviews[id]; ok {
		return r.joined(review), nil
	}
	return nil, nil
}

func (r memReviews) FindByMovieID(_ context.Context, movieID int64) ([]*entity.Review, error) {
	return r.filter(func(review *entity.Review) bool { return review.MovieID == movieID }), nil
}

func (r memReviews) FindByUserAndMovie(_ context.Context, userID, movieID int64) (*entity.Review, error) {
	found := r.filter(func(review *entity.Review) bool {
		return review.UserID == userID && review.MovieID == movieID
	})
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r memReviews) FindAll(_ context.Context, filter repository.ReviewFilter) ([]*entity.Review, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	return r.filter(func(review *entity.Review) bool {
		if filter.Rating != nil && review.Rating != *filter.Rating {
			return false
		}
		if search == "" {
			return true
		}
		joined := r.joined(review)
		return strings.Contains(strings.ToLower(joined.Text), search) ||
			strings.Contains(strings.ToLower(joined.Username), search) ||
			strings.Contains(strings.ToLower(joined.MovieTitle), search)
	}), nil
}

func (r memReviews) filter(keep func(*entity.Review) bool) []*entity.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Review
	for _, review := range r.s.reviews {
		if keep(review) {
			out = append(out, r.joined(review))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r memReviews) Update(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.reviews[review.ID]
	if !ok {
		return apperror.NotFound("review", review.ID)
	}
	stored.Text = review.Text
	stored.Rating = review.Rating
	stored.UpdatedAt = review.UpdatedAt
	return nil
}

func (r memReviews) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return apperror.NotFound("review", id)
	}
	delete(r.s.reviews, id)
	return nil
}
