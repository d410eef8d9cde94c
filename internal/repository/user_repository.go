package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinepass/ticketing/internal/model"
	"github.com/cinepass/ticketing/internal/utils"
)

// UserRepo provides account persistence. Loyalty points live on the
// users row but are only read here; the booking transaction is the sole
// writer of the balance.
type UserRepo struct{ db *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create hashes the password and inserts a user, returning its ID.
// theatreID is only meaningful for MANAGER accounts and may be nil.
func (r *UserRepo) Create(ctx context.Context, username, email, phone, password string, role model.Role, theatreID *uint64, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var ph interface{}
	if p := strings.TrimSpace(phone); p != "" {
		ph = p
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, email, phone, password_hash, role, theatre_id) VALUES (?,?,?,?,?,?)",
		username, email, ph, hash, string(role), theatreID)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "uq_users_email") {
				return 0, ErrEmailExists
			}
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userColumns = "id,username,email,phone,password_hash,role,theatre_id,loyalty_points,created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var phone sql.NullString
	var theatreID sql.NullInt64
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &phone, &u.PasswordHash,
		&role, &theatreID, &u.LoyaltyPoints, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Role = model.Role(role)
	if phone.Valid {
		p := phone.String
		u.Phone = &p
	}
	if theatreID.Valid {
		tid := uint64(theatreID.Int64)
		u.TheatreID = &tid
	}
	return u, nil
}

// GetByUsername fetches a user by username. ErrNotFound is returned when
// no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id. ErrNotFound is returned when no such
// user exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// LoyaltyPoints returns the current point balance for a user.
func (r *UserRepo) LoyaltyPoints(ctx context.Context, userID uint64) (int64, error) {
	var pts int64
	err := r.db.QueryRowContext(ctx,
		"SELECT loyalty_points FROM users WHERE id=? LIMIT 1", userID).Scan(&pts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return pts, err
}

// ListAll returns every account ordered by creation time, newest first.
// Intended for the admin overview only.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		var phone sql.NullString
		var theatreID sql.NullInt64
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &phone, &u.PasswordHash,
			&role, &theatreID, &u.LoyaltyPoints, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = model.Role(role)
		if phone.Valid {
			p := phone.String
			u.Phone = &p
		}
		if theatreID.Valid {
			tid := uint64(theatreID.Int64)
			u.TheatreID = &tid
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
