package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/cinepass/ticketing/internal/model"
)

// ReviewRepo persists movie and theatre reviews.
type ReviewRepo struct{ db *sql.DB }

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and returns its ID. MovieID must be nil for
// theatre reviews and set for movie reviews; the handler validates the
// rating range and referenced rows before calling.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) (uint64, error) {
	var movieID interface{}
	if rev.MovieID != nil {
		movieID = *rev.MovieID
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, theatre_id, movie_id, rating, comment, review_type) VALUES (?,?,?,?,?,?)",
		rev.UserID, rev.TheatreID, movieID, rev.Rating, rev.Comment, string(rev.Type))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ReviewDetail is a review joined with the reviewer's username.
type ReviewDetail struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ListByMovie returns the reviews written about a movie, newest first.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]ReviewDetail, error) {
	return r.list(ctx,
		`SELECT r.id, u.username, r.rating, r.comment, r.review_type, r.created_at
		 FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.movie_id=? ORDER BY r.created_at DESC`, movieID)
}

// ListByTheatre returns the theatre reviews for a venue, newest first.
// Movie reviews written at the theatre are excluded.
func (r *ReviewRepo) ListByTheatre(ctx context.Context, theatreID uint64) ([]ReviewDetail, error) {
	return r.list(ctx,
		`SELECT r.id, u.username, r.rating, r.comment, r.review_type, r.created_at
		 FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.theatre_id=? AND r.review_type='theatre' ORDER BY r.created_at DESC`, theatreID)
}

// AverageRating returns the mean rating and review count for a movie.
// A movie with no reviews yields (0, 0).
func (r *ReviewRepo) AverageRating(ctx context.Context, movieID uint64) (float64, int, error) {
	var avg sql.NullFloat64
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT AVG(rating), COUNT(*) FROM reviews WHERE movie_id=?", movieID).Scan(&avg, &n)
	if err != nil {
		return 0, 0, err
	}
	return avg.Float64, n, nil
}

// ListByUser returns the reviews a customer has written, newest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]ReviewDetail, error) {
	return r.list(ctx,
		`SELECT r.id, u.username, r.rating, r.comment, r.review_type, r.created_at
		 FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.user_id=? ORDER BY r.created_at DESC`, userID)
}

// ListAll returns every review on the platform, newest first. Intended
// for the admin moderation overview.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]ReviewDetail, error) {
	return r.list(ctx,
		`SELECT r.id, u.username, r.rating, r.comment, r.review_type, r.created_at
		 FROM reviews r JOIN users u ON u.id = r.user_id
		 ORDER BY r.created_at DESC`)
}

func (r *ReviewRepo) list(ctx context.Context, query string, args ...interface{}) ([]ReviewDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReviewDetail, 0)
	for rows.Next() {
		var d ReviewDetail
		if err := rows.Scan(&d.ID, &d.Username, &d.Rating, &d.Comment, &d.Type, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
