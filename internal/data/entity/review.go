package entity

type Review struct {
	Base
	MovieID int64  `db:"movie_id"`
	UserID  int64  `db:"user_id"`
	Text    string `db:"review"`
	Rating  int    `db:"rating"` // 1-5

	// Filled by queries that join users and movies
	Username   string `db:"username"`
	MovieTitle string `db:"movie_title"`
}

// OwnedBy reports whether userID authored the review.
func (r *Review) OwnedBy(userID int64) bool {
	return r != nil && r.UserID == userID
}
