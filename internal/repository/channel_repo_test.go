package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"vidtube/internal/repository"
)

func TestChannelRepository_Profile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewChannelRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "username", "full_name", "avatar", "cover_image",
		"subscribers", "subscribed_to", "is_subscribed",
	}).AddRow(int64(2), "bob", "Bob B", "https://cdn/b.png", "", int64(120), int64(4), true)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users u WHERE u.username = ?")).
		WithArgs(int64(7), "bob").
		WillReturnRows(rows)

	p, err := repo.Profile(context.Background(), "bob", 7)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if p == nil || p.Subscribers != 120 || !p.IsSubscribed {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChannelRepository_Profile_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewChannelRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users u WHERE u.username = ?")).
		WithArgs(int64(7), "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.Profile(context.Background(), "ghost", 7)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile, got %+v", p)
	}
}

func TestChannelRepository_ToggleSubscription_Unsubscribes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewChannelRepository(db)

	// Existing edge: delete hits a row, no insert follows.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subscriptions")).
		WithArgs(int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	subscribed, err := repo.ToggleSubscription(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("ToggleSubscription() error = %v", err)
	}
	if subscribed {
		t.Fatalf("expected unsubscribe")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChannelRepository_ToggleSubscription_Subscribes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewChannelRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM subscriptions")).
		WithArgs(int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscriptions")).
		WithArgs(int64(7), int64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	subscribed, err := repo.ToggleSubscription(context.Background(), 7, 2)
	if err != nil {
		t.Fatalf("ToggleSubscription() error = %v", err)
	}
	if !subscribed {
		t.Fatalf("expected subscribe")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
