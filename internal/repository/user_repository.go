package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kevinwu/room-reservation/internal/model"
	"github.com/kevinwu/room-reservation/internal/utils"
)

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts a user, returning its ID. The
// username is unique; a duplicate insert maps to ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		// MySQL error 1062: duplicate entry for the unique username index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
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

// GetByUsername fetches a user by username. sql.ErrNoRows is returned when
// no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
