package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// InsertRecord appends a recommendation record. Records are never
// updated in place; the latest one per (email, domain) is the cache
// entry and older ones remain as history.
func (r *Repository) InsertRecord(ctx context.Context, rec *domain.Record) error {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	snapshot, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	var cross []byte
	if rec.Cross != nil {
		if cross, err = json.Marshal(rec.Cross); err != nil {
			return fmt.Errorf("marshal cross items: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO recommendation_records (id, email, domain, items, cross_items, snapshot, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, strings.ToLower(rec.Email), rec.Domain, items, cross, snapshot, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record email=%s domain=%s: %w", rec.Email, rec.Domain, err)
	}
	return nil
}

// LatestRecord returns the most recent record for a (email, domain)
// pair, or nil when none exists.
func (r *Repository) LatestRecord(ctx context.Context, email, dom string) (*domain.Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, domain, items, cross_items, snapshot, created_at
		 FROM recommendation_records
		 WHERE email = $1 AND domain = $2
		 ORDER BY created_at DESC
		 LIMIT 1`,
		strings.ToLower(email), dom,
	)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest record email=%s domain=%s: %w", email, dom, err)
	}
	return rec, nil
}

// History returns records for a user across all domain tags, most
// recent first.
func (r *Repository) History(ctx context.Context, email string, limit int) ([]domain.Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, domain, items, cross_items, snapshot, created_at
		 FROM recommendation_records
		 WHERE email = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		strings.ToLower(email), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history email=%s: %w", email, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history records: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	rec := &domain.Record{}
	var items, cross, snapshot []byte

	if err := row.Scan(&rec.ID, &rec.Email, &rec.Domain, &items, &cross, &snapshot, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if len(cross) > 0 {
		rec.Cross = &domain.CrossItems{}
		if err := json.Unmarshal(cross, rec.Cross); err != nil {
			return nil, fmt.Errorf("unmarshal cross items: %w", err)
		}
	}
	if err := json.Unmarshal(snapshot, &rec.Snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return rec, nil
}
