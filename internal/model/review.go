package model

import "time"

// ReviewType says what a review is about.
type ReviewType string

const (
	ReviewMovie   ReviewType = "movie"
	ReviewTheatre ReviewType = "theatre"
)

// Review is a 1-5 star rating with a comment, written by a user about a
// movie or a theatre.
type Review struct {
	ID        uint64     // reviews.id
	UserID    uint64     // reviews.user_id
	TheatreID uint64     // reviews.theatre_id
	MovieID   *uint64    // reviews.movie_id (nil for theatre reviews)
	Rating    int        // reviews.rating, 1..5
	Comment   string     // reviews.comment
	Type      ReviewType // reviews.review_type
	CreatedAt time.Time  // reviews.created_at
}
