package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"muse/internal/usecase"
	"muse/internal/web"
	"muse/pkg/apperror"
	"muse/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Movie  *MovieHandler
	Review *ReviewHandler
	Page   *PageHandler
}

func NewHandler(service *usecase.Service, renderer *web.Renderer, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Movie:  NewMovieHandler(service.Movie, service.Genre, log),
		Review: NewReviewHandler(service.Review, log),
		Page:   NewPageHandler(service, renderer, config.Session, log),
	}
}

// ==================== SHARED HELPERS ====================

// maxBodyBytes caps JSON and form bodies; the largest input is a 500 char text field.
const maxBodyBytes = 16 << 10

var errInvalidBody = errors.New("invalid request body")

// decodeJSON decodes the body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return usecase.ClientInfo{UserAgent: r.UserAgent(), IPAddress: ip}
}

func principal(r *http.Request) *utils.Principal {
	p, _ := utils.GetPrincipalFromContext(r.Context())
	return p
}

func logServiceError(log *zap.Logger, err error, operation string, status int) {
	switch {
	case status >= http.StatusInternalServerError:
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
	default:
		log.Warn(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation),
			zap.Int("status", status))
	}
}

// writeAPIError renders err as {"error": ..., "fields": ...}.
func writeAPIError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	status := apperror.HTTPStatus(err)
	logServiceError(log, err, operation, status)
	utils.WriteError(w, status, apperror.Message(err), apperror.FieldErrors(err))
}

// writeEnvelopeError renders err in the {status, message, errors} envelope.
func writeEnvelopeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	status := apperror.HTTPStatus(err)
	logServiceError(log, err, operation, status)

	var fields any
	if f := apperror.FieldErrors(err); len(f) > 0 {
		fields = f
	}
	utils.ResponseJSON(w, status, false, apperror.Message(err), nil, fields)
}
