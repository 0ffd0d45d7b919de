package adaptor

import (
	"net/http"

	"muse/internal/dto/request"
	"muse/internal/usecase"
	"muse/pkg/utils"

	"go.uber.org/zap"
)

// MovieHandler serves the admin catalog API.
type MovieHandler struct {
	movies usecase.MovieService
	genres usecase.GenreService
	log    *zap.Logger
}

func NewMovieHandler(movies usecase.MovieService, genres usecase.GenreService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		movies: movies,
		genres: genres,
		log:    log.With(zap.String("handler", "movie")),
	}
}

// ==================== GENRE ====================

// ListGenres handles GET /api/admin/genres
func (h *MovieHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.ListGenres(r.Context())
	if err != nil {
		writeEnvelopeError(w, h.log, err, "list genres")
		return
	}
	utils.ResponseSuccess(w, "success", genres)
}

// CreateGenre handles POST /api/admin/genres
func (h *MovieHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	genre, err := h.genres.CreateGenre(r.Context(), &req)
	if err != nil {
		writeEnvelopeError(w, h.log, err, "create genre")
		return
	}
	utils.ResponseCreated(w, "Genre created", genre)
}

// DeleteGenre handles DELETE /api/admin/genres/{id}
func (h *MovieHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	genreID, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid genre ID", nil)
		return
	}

	if err := h.genres.DeleteGenre(r.Context(), genreID); err != nil {
		writeEnvelopeError(w, h.log, err, "delete genre")
		return
	}
	utils.ResponseSuccess(w, "Genre deleted", nil)
}

// ==================== MOVIE ====================

// CreateMovie handles POST /api/admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.movies.CreateMovie(r.Context(), &req)
	if err != nil {
		writeEnvelopeError(w, h.log, err, "create movie")
		return
	}
	utils.ResponseCreated(w, "Movie created", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	var req request.MovieUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.movies.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		writeEnvelopeError(w, h.log, err, "update movie")
		return
	}
	utils.ResponseSuccess(w, "Movie updated", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := idParam(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	if err := h.movies.DeleteMovie(r.Context(), movieID); err != nil {
		writeEnvelopeError(w, h.log, err, "delete movie")
		return
	}
	utils.ResponseSuccess(w, "Movie deleted", nil)
}
