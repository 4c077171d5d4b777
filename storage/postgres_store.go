package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"listing-monitor/models"
	"listing-monitor/utils"
)

// PostgresStore persists the listing snapshot to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to come
// up, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 500 * time.Millisecond, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	ps := NewPostgresStoreFromDB(db)
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

// NewPostgresStoreFromDB wraps an already opened and migrated database.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			url        TEXT        PRIMARY KEY,
			price      TEXT        NOT NULL DEFAULT '',
			scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_scraped_at ON listings(scraped_at DESC);
	`)
	return err
}

// ListAll implements SnapshotStore.
func (ps *PostgresStore) ListAll(ctx context.Context) ([]models.PersistedListing, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT url, price, scraped_at
		FROM listings
		ORDER BY scraped_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list: %w", err)
	}
	defer rows.Close()

	listings := []models.PersistedListing{}
	for rows.Next() {
		var l models.PersistedListing
		if err := rows.Scan(&l.URL, &l.Price, &l.ScrapedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Clear implements SnapshotStore.
func (ps *PostgresStore) Clear(ctx context.Context) error {
	if _, err := ps.db.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Upsert implements SnapshotStore.
func (ps *PostgresStore) Upsert(ctx context.Context, url, price string) error {
	_, err := ps.db.ExecContext(ctx, `
		INSERT INTO listings (url, price)
		VALUES ($1, $2)
		ON CONFLICT (url) DO UPDATE
		SET price = EXCLUDED.price,
			scraped_at = NOW()
	`, url, price)
	if err != nil {
		return fmt.Errorf("postgres: upsert %s: %w", url, err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
