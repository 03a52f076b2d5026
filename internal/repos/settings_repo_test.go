package repos_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"shoppanel/internal/repos"
)

func settingsDB(t *testing.T) *repos.SettingsRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return repos.NewSettingsRepo(db)
}

func TestSettings_GetManyBatched(t *testing.T) {
	s := settingsDB(t)

	if err := s.Set("cards_api_enabled_p1", "true"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("cards_api_url_p1", "https://x/y"); err != nil {
		t.Fatal(err)
	}

	vals, err := s.GetMany("cards_api_enabled_p1", "cards_api_url_p1", "cards_api_token_p1")
	if err != nil {
		t.Fatal(err)
	}
	if vals["cards_api_enabled_p1"] != "true" || vals["cards_api_url_p1"] != "https://x/y" {
		t.Fatalf("unexpected values: %+v", vals)
	}
	if _, ok := vals["cards_api_token_p1"]; ok {
		t.Fatal("unset key should be absent, not empty-present")
	}
}

func TestSettings_SetOverwrites(t *testing.T) {
	s := settingsDB(t)

	if err := s.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "v2" {
		t.Fatalf("want v2, got %q", got)
	}
}

func TestSettings_SetManyWritesAll(t *testing.T) {
	s := settingsDB(t)

	if err := s.Set("cards_api_url_p1", "https://old.example"); err != nil {
		t.Fatal(err)
	}
	err := s.SetMany(map[string]string{
		"cards_api_enabled_p1": "true",
		"cards_api_url_p1":     "https://new.example",
		"cards_api_token_p1":   "tok",
	})
	if err != nil {
		t.Fatal(err)
	}

	vals, err := s.GetMany("cards_api_enabled_p1", "cards_api_url_p1", "cards_api_token_p1")
	if err != nil {
		t.Fatal(err)
	}
	if vals["cards_api_enabled_p1"] != "true" || vals["cards_api_url_p1"] != "https://new.example" || vals["cards_api_token_p1"] != "tok" {
		t.Fatalf("unexpected values: %+v", vals)
	}
}

// A failed multi-key write must roll back rather than leave some keys
// updated and others stale.
func TestSettings_SetManyRollsBackOnFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO settings").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	s := repos.NewSettingsRepo(sqlx.NewDb(mockDB, "sqlmock"))
	if err := s.SetMany(map[string]string{"k": "v"}); err == nil {
		t.Fatal("want write failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// A database without a settings table reads as "no settings".
func TestSettings_MissingTableTolerated(t *testing.T) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	s := repos.NewSettingsRepo(db)

	vals, err := s.GetMany("anything")
	if err != nil {
		t.Fatalf("missing table must not error: %v", err)
	}
	if len(vals) != 0 {
		t.Fatalf("want empty map, got %+v", vals)
	}
}
