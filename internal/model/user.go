package model

import "time"

// Role distinguishes the three kinds of account the platform knows.
// It replaces the loose role strings of earlier iterations with a typed
// enum so handlers and middleware compare against constants.
type Role string

const (
	RoleAdmin   Role = "ADMIN"   // platform operator: manages theatres and users
	RoleManager Role = "MANAGER" // runs one theatre: movies, snacks, bookings overview
	RoleUser    Role = "USER"    // customer: books seats, orders food, reviews
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User mirrors the `users` table. The loyalty-point balance is embedded
// here; it is only ever mutated inside a booking transaction, never by
// handlers directly.
//
// Fields:
//  ID            – primary key identifier.
//  Username      – unique login name.
//  Email         – unique contact address.
//  Phone         – optional phone number.
//  PasswordHash  – bcrypt hash of the password.
//  Role          – account role (ADMIN, MANAGER, USER).
//  TheatreID     – theatre a MANAGER operates (nil for other roles).
//  LoyaltyPoints – current point balance; never negative.
//  CreatedAt     – creation timestamp.
type User struct {
	ID            uint64
	Username      string
	Email         string
	Phone         *string
	PasswordHash  string
	Role          Role
	TheatreID     *uint64
	LoyaltyPoints int64
	CreatedAt     time.Time
}
