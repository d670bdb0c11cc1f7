package historyrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vastr/panchanga/internal/domain/panchanga"
)

// PostgresRepository persists history entries in the panchanga_history table
// (see migrations/).
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts one entry.
func (r *PostgresRepository) Save(ctx context.Context, e panchanga.HistoryEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO panchanga_history
			(id, created_at, instant, latitude, longitude, elevation, timezone,
			 vara, tithi, nakshatra, yoga, karana)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, e.ID, e.CreatedAt, e.Instant, e.Latitude, e.Longitude, e.Elevation, e.Timezone,
		e.Vara, e.Tithi, e.Nakshatra, e.Yoga, e.Karana)
	return err
}

// Recent lists entries newest first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]panchanga.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, instant, latitude, longitude, elevation, timezone,
		       vara, tithi, nakshatra, yoga, karana
		FROM panchanga_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []panchanga.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (panchanga.HistoryEntry, error) {
	var e panchanga.HistoryEntry
	err := row.Scan(&e.ID, &e.CreatedAt, &e.Instant, &e.Latitude, &e.Longitude, &e.Elevation, &e.Timezone,
		&e.Vara, &e.Tithi, &e.Nakshatra, &e.Yoga, &e.Karana)
	if err != nil {
		return panchanga.HistoryEntry{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.Instant = e.Instant.UTC()
	return e, nil
}

var _ panchanga.HistoryRepository = (*PostgresRepository)(nil)
