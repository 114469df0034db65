package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "a@x.com", "Alice Doe", "https://cdn/a.png", "", "bcrypt-hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := repo.Create(context.Background(), userFixture())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByUsernameOrEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = ? OR email = ?")).
		WithArgs("ghost", "").
		WillReturnRows(userRows())

	u, err := repo.GetByUsernameOrEmail(context.Background(), "ghost", "")
	if err != nil {
		t.Fatalf("GetByUsernameOrEmail() error = %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user for no rows, got %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	rows := userRows().AddRow(
		int64(7), "alice", "a@x.com", "Alice Doe", "https://cdn/a.png", "",
		"bcrypt-hash", "R1", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	u, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if u == nil || u.Username != "alice" || u.RefreshToken != "R1" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET refresh_token = ? WHERE id = ?")).
		WithArgs("R2", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), 7, "R2"); err != nil {
		t.Fatalf("UpdateRefreshToken() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateRefreshToken_MissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET refresh_token = ? WHERE id = ?")).
		WithArgs("", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateRefreshToken(context.Background(), 99, ""); err == nil {
		t.Fatalf("expected error for zero-row update")
	}
}

func TestUserRepository_Exists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE username = ? OR email = ?")).
		WithArgs("alice", "a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "alice", "a@x.com")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Fatalf("expected exists=true")
	}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "full_name", "avatar", "cover_image",
		"password_hash", "refresh_token", "created_at",
	})
}

func userFixture() models.User {
	return models.User{
		Username:     "alice",
		Email:        "a@x.com",
		FullName:     "Alice Doe",
		Avatar:       "https://cdn/a.png",
		PasswordHash: "bcrypt-hash",
	}
}
