package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStoreFromDB(db), mock
}

func TestPostgresListAll(t *testing.T) {
	store, mock := newMockStore(t)
	newer := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT url, price, scraped_at")).
		WillReturnRows(sqlmock.NewRows([]string{"url", "price", "scraped_at"}).
			AddRow("https://www.immobiliare.it/annunci/2/", "€ 200.000", newer).
			AddRow("https://www.immobiliare.it/annunci/1/", "€ 100.000", older))

	got, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://www.immobiliare.it/annunci/2/", got[0].URL)
	assert.Equal(t, "€ 100.000", got[1].Price)
	assert.Equal(t, older, got[1].ScrapedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListAllEmpty(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT url, price, scraped_at").
		WillReturnRows(sqlmock.NewRows([]string{"url", "price", "scraped_at"}))

	got, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresUpsert(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO listings (url, price)")).
		WithArgs("https://www.immobiliare.it/annunci/1/", "€ 100.000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Upsert(context.Background(), "https://www.immobiliare.it/annunci/1/", "€ 100.000"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClearError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM listings").WillReturnError(errors.New("connection reset"))

	err := store.Clear(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: clear")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS listings")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
