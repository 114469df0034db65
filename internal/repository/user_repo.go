package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of the Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, full_name, avatar, cover_image, password_hash, refresh_token, created_at)
VALUES (?, ?, ?, ?, ?, ?, '', ?)`

	selectUserByIDSQL = `SELECT id, username, email, full_name, avatar, cover_image, password_hash, refresh_token, created_at
FROM users WHERE id = ?`

	selectUserByNameOrEmailSQL = `SELECT id, username, email, full_name, avatar, cover_image, password_hash, refresh_token, created_at
FROM users WHERE username = ? OR email = ?`

	existsUserSQL = `SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`

	updateRefreshTokenSQL = `UPDATE users SET refresh_token = ? WHERE id = ?`
	updatePasswordSQL     = `UPDATE users SET password_hash = ? WHERE id = ?`
	updateAccountSQL      = `UPDATE users SET full_name = ?, email = ? WHERE id = ?`
	updateAvatarSQL       = `UPDATE users SET avatar = ? WHERE id = ?`
	updateCoverImageSQL   = `UPDATE users SET cover_image = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.Email, u.FullName, u.Avatar, u.CoverImage, u.PasswordHash, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return lastID, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id), fmt.Sprintf("id %d", id))
}

func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, selectUserByNameOrEmailSQL, username, email)
	return r.scanUser(row, fmt.Sprintf("username %q / email %q", username, email))
}

func (r *UserRepository) scanUser(row *sql.Row, desc string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Avatar, &u.CoverImage,
		&u.PasswordHash, &u.RefreshToken, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by %s: %w", desc, err)
	}
	return &u, nil
}

func (r *UserRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, existsUserSQL, username, email).Scan(&n); err != nil {
		return false, fmt.Errorf("count users %q/%q: %w", username, email, err)
	}
	return n > 0, nil
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id int64, token string) error {
	return r.updateField(ctx, updateRefreshTokenSQL, "refresh_token", id, token)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.updateField(ctx, updatePasswordSQL, "password_hash", id, hash)
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id int64, fullName, email string) error {
	res, err := r.db.ExecContext(ctx, updateAccountSQL, fullName, email, id)
	if err != nil {
		return fmt.Errorf("update account for user %d: %w", id, err)
	}
	return requireRow(res, "account", id)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id int64, url string) error {
	return r.updateField(ctx, updateAvatarSQL, "avatar", id, url)
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id int64, url string) error {
	return r.updateField(ctx, updateCoverImageSQL, "cover_image", id, url)
}

// updateField performs a single-column UPDATE keyed by user id.
func (r *UserRepository) updateField(ctx context.Context, query, column string, id int64, value string) error {
	res, err := r.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("update %s for user %d: %w", column, id, err)
	}
	return requireRow(res, column, id)
}

// requireRow turns a zero-row UPDATE into an error so writes against
// deleted users do not pass silently.
func requireRow(res sql.Result, column string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected updating %s for user %d: %w", column, id, err)
	}
	if n == 0 {
		return fmt.Errorf("update %s: user %d not found", column, id)
	}
	return nil
}
