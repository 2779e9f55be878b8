package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupPostgresMock(t *testing.T) (*PostgresGateway, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	gateway := &PostgresGateway{DB: db}
	cleanup := func() { db.Close() }
	return gateway, mock, cleanup
}

func TestPostgresGateway_Save(t *testing.T) {
	gateway, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO portal_state`)).
		WithArgs(StateKey, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := gateway.Save(context.Background(), testState()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGateway_SaveError(t *testing.T) {
	gateway, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO portal_state`)).
		WithArgs(StateKey, sqlmock.AnyArg()).
		WillReturnError(errors.New("connection lost"))

	if err := gateway.Save(context.Background(), testState()); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGateway_LoadFound(t *testing.T) {
	gateway, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	blob, err := json.Marshal(testState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM portal_state WHERE key = $1`)).
		WithArgs(StateKey).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(blob))

	st, found, err := gateway.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatalf("expected found=true")
	}
	if len(st.Services) != 1 || st.Services[0].Name != "Hospital" {
		t.Errorf("unexpected state: %+v", st.Services)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresGateway_LoadAbsent(t *testing.T) {
	gateway, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM portal_state WHERE key = $1`)).
		WithArgs(StateKey).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	_, found, err := gateway.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Errorf("expected found=false when no row exists")
	}
}

func TestPostgresGateway_LoadCorrupt(t *testing.T) {
	gateway, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data FROM portal_state WHERE key = $1`)).
		WithArgs(StateKey).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("{broken")))

	_, _, err := gateway.Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}
