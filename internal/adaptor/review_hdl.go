package adaptor

import (
	"net/http"
	"strconv"

	"muse/internal/dto/request"
	"muse/internal/dto/response"
	"muse/internal/usecase"
	"muse/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetMovieReviews handles GET /api/movies/{id}/reviews/ (public)
func (h *ReviewHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := idParam(r, "id")
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "Movie not found", nil)
		return
	}

	reviews, err := h.service.ListMovieReviews(r.Context(), movieID)
	if err != nil {
		writeAPIError(w, h.log, err, "list movie reviews")
		return
	}

	utils.WriteJSON(w, http.StatusOK, reviews)
}

// CreateReview handles POST /api/movies/{id}/reviews/create/ (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := idParam(r, "id")
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "Movie not found", nil)
		return
	}

	var req request.ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), principal(r), movieID, &req)
	if err != nil {
		writeAPIError(w, h.log, err, "create review")
		return
	}

	utils.WriteJSON(w, http.StatusOK, review)
}

// UpdateReview handles PUT /api/reviews/{id}/update/ (owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := idParam(r, "id")
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "Review not found", nil)
		return
	}

	var req request.ReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), principal(r), reviewID, &req)
	if err != nil {
		writeAPIError(w, h.log, err, "update review")
		return
	}

	utils.WriteJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{id}/delete/ (owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := idParam(r, "id")
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "Review not found", nil)
		return
	}

	if err := h.service.DeleteReview(r.Context(), principal(r), reviewID); err != nil {
		writeAPIError(w, h.log, err, "delete review")
		return
	}

	utils.WriteJSON(w, http.StatusOK, response.MessageResponse{Message: "Review deleted successfully"})
}

// ListReviews handles GET /api/admin/reviews (admin)
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := request.ReviewFilter{Search: query.Get("search")}

	if raw := query.Get("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Validation failed", map[string]string{"rating": "Enter a whole number"})
			return
		}
		filter.Rating = &rating
	}

	reviews, err := h.service.ListReviews(r.Context(), filter)
	if err != nil {
		writeEnvelopeError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}
