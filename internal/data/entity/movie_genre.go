package entity

// MovieGenre is a row of the movie_genres link table.
type MovieGenre struct {
	MovieID int64 `db:"movie_id"`
	GenreID int64 `db:"genre_id"`
}
