package adaptor

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"muse/internal/dto/request"
	"muse/internal/dto/response"
	"muse/internal/usecase"
	"muse/internal/web"
	"muse/pkg/apperror"
	"muse/pkg/utils"

	"go.uber.org/zap"
)

const (
	reviewSavedMessage   = "Your review has been saved!"
	loginToReviewMessage = "You must be logged in to leave a review."
	formErrorsMessage    = "Please correct the errors below."
)

// PageHandler serves the server-rendered site.
type PageHandler struct {
	auth     usecase.AuthService
	movies   usecase.MovieService
	genres   usecase.GenreService
	reviews  usecase.ReviewService
	renderer *web.Renderer
	session  utils.SessionConfig
	log      *zap.Logger
}

func NewPageHandler(service *usecase.Service, renderer *web.Renderer, session utils.SessionConfig, log *zap.Logger) *PageHandler {
	return &PageHandler{
		auth:     service.Auth,
		movies:   service.Movie,
		genres:   service.Genre,
		reviews:  service.Review,
		renderer: renderer,
		session:  session,
		log:      log.With(zap.String("handler", "page")),
	}
}

type movieListView struct {
	Movies        []response.MovieResponse
	Genres        []response.GenreResponse
	SearchQuery   string
	SelectedGenre string
}

type reviewForm struct {
	Rating int
	Review string
}

type movieDetailView struct {
	Movie  *response.MovieDetailResponse
	Form   reviewForm
	Errors map[string]string
}

type signupForm struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

type signupView struct {
	Form   signupForm
	Errors map[string]string
}

type loginView struct {
	Username string
	Next     string
}

// ==================== MOVIES ====================

// MovieList handles GET /
func (h *PageHandler) MovieList(w http.ResponseWriter, r *http.Request) {
	filter := request.MovieFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Genre:  r.URL.Query().Get("genre"),
	}

	movies, err := h.movies.ListMovies(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err, "list movies")
		return
	}

	genres, err := h.genres.ListGenres(r.Context())
	if err != nil {
		h.fail(w, r, err, "list genres")
		return
	}

	h.render(w, r, http.StatusOK, "movie_list", "", movieListView{
		Movies:        movies,
		Genres:        genres,
		SearchQuery:   filter.Search,
		SelectedGenre: filter.Genre,
	})
}

// MovieDetail handles GET /movie/{id}/
func (h *PageHandler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	detail, err := h.movies.GetMovieDetail(r.Context(), movieID, principal(r))
	if err != nil {
		h.fail(w, r, err, "get movie detail")
		return
	}

	// Form diisi dari review milik user kalau sudah ada
	form := reviewForm{Rating: usecase.DefaultRating}
	if detail.UserReview != nil {
		form = reviewForm{Rating: detail.UserReview.Rating, Review: detail.UserReview.Review}
	}

	h.render(w, r, http.StatusOK, "movie_detail", detail.Title, movieDetailView{
		Movie:  detail,
		Form:   form,
		Errors: map[string]string{},
	})
}

// SaveReview handles POST /movie/{id}/
func (h *PageHandler) SaveReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	// Unknown movies are a 404 for everyone, signed in or not
	viewer := principal(r)
	detail, err := h.movies.GetMovieDetail(r.Context(), movieID, viewer)
	if err != nil {
		h.fail(w, r, err, "get movie detail")
		return
	}

	if viewer == nil {
		web.AddFlash(w, r, web.Error(loginToReviewMessage))
		next := fmt.Sprintf("/movie/%d/", movieID)
		http.Redirect(w, r, "/login/?next="+url.QueryEscape(next), http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	text := r.PostForm.Get("review")
	req := request.ReviewRequest{Review: &text}
	form := reviewForm{Review: text}
	formErrors := map[string]string{}

	if raw := strings.TrimSpace(r.PostForm.Get("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			formErrors["rating"] = "Enter a whole number"
		} else {
			req.Rating = &rating
			form.Rating = rating
		}
	}

	if len(formErrors) == 0 {
		_, err := h.reviews.SaveOwnReview(r.Context(), viewer, movieID, &req)
		if err == nil {
			web.AddFlash(w, r, web.Success(reviewSavedMessage))
			http.Redirect(w, r, fmt.Sprintf("/movie/%d/", movieID), http.StatusSeeOther)
			return
		}
		if apperror.HTTPStatus(err) != http.StatusBadRequest {
			h.fail(w, r, err, "save review")
			return
		}
		formErrors = apperror.FieldErrors(err)
		if len(formErrors) == 0 {
			formErrors = map[string]string{"review": apperror.Message(err)}
		}
	}

	// A rejected save changes nothing, so the detail loaded above is current
	h.render(w, r, http.StatusOK, "movie_detail", detail.Title, movieDetailView{
		Movie:  detail,
		Form:   form,
		Errors: formErrors,
	}, web.Error(formErrorsMessage))
}

// ==================== AUTH ====================

// SignupForm handles GET /signup/
func (h *PageHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup", "Sign up", signupView{Errors: map[string]string{}})
}

// Signup handles POST /signup/
func (h *PageHandler) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	req := request.SignupRequest{
		Username:        r.PostForm.Get("username"),
		Email:           r.PostForm.Get("email"),
		FirstName:       r.PostForm.Get("first_name"),
		LastName:        r.PostForm.Get("last_name"),
		Password:        r.PostForm.Get("password"),
		PasswordConfirm: r.PostForm.Get("password_confirm"),
	}

	resp, err := h.auth.Signup(r.Context(), &req, clientInfo(r))
	if err != nil {
		if apperror.HTTPStatus(err) != http.StatusBadRequest {
			h.fail(w, r, err, "signup")
			return
		}
		h.render(w, r, http.StatusOK, "signup", "Sign up", signupView{
			Form: signupForm{
				Username:  req.Username,
				Email:     req.Email,
				FirstName: req.FirstName,
				LastName:  req.LastName,
			},
			Errors: apperror.FieldErrors(err),
		}, web.Error(apperror.Message(err)))
		return
	}

	h.setSessionCookie(w, resp)
	web.AddFlash(w, r, web.Success(fmt.Sprintf("Account created for %s!", resp.Username)))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm handles GET /login/
func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Log in", loginView{
		Next: safeNext(r.URL.Query().Get("next")),
	})
}

// Login handles POST /login/
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	req := request.LoginRequest{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
	}
	next := safeNext(r.PostForm.Get("next"))

	resp, err := h.auth.Login(r.Context(), &req, clientInfo(r))
	if err != nil {
		status := apperror.HTTPStatus(err)
		if status != http.StatusUnauthorized && status != http.StatusBadRequest {
			h.fail(w, r, err, "login")
			return
		}
		h.render(w, r, http.StatusOK, "login", "Log in", loginView{
			Username: req.Username,
			Next:     next,
		}, web.Error(usecase.LoginFailedMessage))
		return
	}

	h.setSessionCookie(w, resp)
	web.AddFlash(w, r, web.Success(fmt.Sprintf("Welcome back, %s!", resp.Username)))
	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout handles POST /logout/
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := utils.GetTokenFromContext(r.Context()); ok {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			h.log.Error("Failed to revoke session", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

// NotFound renders the 404 page for unmatched routes.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// ==================== HELPERS ====================

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any, extra ...web.Flash) {
	flashes := append(web.PopFlashes(w, r), extra...)
	h.renderer.Render(w, status, name, web.Page{
		Title:   title,
		User:    principal(r),
		Flashes: flashes,
		Data:    data,
	})
}

func (h *PageHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found", "Not found", "")
}

// fail renders a 404 page for missing resources and a bare 500 otherwise.
func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error, operation string) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusNotFound {
		h.render(w, r, http.StatusNotFound, "not_found", "Not found", apperror.Message(err))
		return
	}
	logServiceError(h.log, err, operation, status)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *PageHandler) setSessionCookie(w http.ResponseWriter, resp *response.AuthResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt.UTC(),
		MaxAge:   int(time.Until(resp.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext keeps redirects on this site: only absolute local paths pass.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
