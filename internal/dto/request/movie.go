package request

// MovieFilter comes from the `search` and `genre` query parameters.
type MovieFilter struct {
	Search string `json:"search"`
	Genre  string `json:"genre"`
}

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Director    string  `json:"director" validate:"required,min=1,max=50"`
	ReleaseYear string  `json:"release_year" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" validate:"required,max=500"`
	GenreIDs    []int64 `json:"genre_ids,omitempty" validate:"dive,min=1"`
}

// MovieUpdateRequest leaves nil fields unchanged. A non-nil GenreIDs
// replaces the movie's genre set, so an empty list clears it.
type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Director    *string  `json:"director,omitempty" validate:"omitempty,min=1,max=50"`
	ReleaseYear *string  `json:"release_year,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	GenreIDs    *[]int64 `json:"genre_ids,omitempty" validate:"omitempty,dive,min=1"`
}
