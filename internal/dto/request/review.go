package request

// ReviewRequest is the body of both create and update. On create a
// missing rating means 5 and a missing review means empty text; on
// update missing fields keep their stored value.
type ReviewRequest struct {
	Review *string `json:"review,omitempty" validate:"omitempty,max=500"`
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// ReviewFilter is the moderation listing query.
type ReviewFilter struct {
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	Search string `json:"search"`
}
