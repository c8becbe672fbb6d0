package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// GetSnapshot returns the saved preferences for a (user, domain) pair.
// A user who has never saved preferences gets a zero snapshot, not an
// error; the orchestrator still generates from an empty prompt context.
func (r *Repository) GetSnapshot(ctx context.Context, email string, d domain.Domain) (domain.Snapshot, error) {
	var snap domain.Snapshot

	err := r.pool.QueryRow(ctx,
		`SELECT genres, era, favorites, languages, artists
		 FROM preferences WHERE email = $1 AND domain = $2`,
		strings.ToLower(email), string(d),
	).Scan(&snap.Genres, &snap.Era, &snap.Favorites, &snap.Languages, &snap.Artists)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Snapshot{}, nil
		}
		return domain.Snapshot{}, fmt.Errorf("query preferences email=%s domain=%s: %w", email, d, err)
	}

	return snap, nil
}

// SaveSnapshot upserts the preference set for a (user, domain) pair.
func (r *Repository) SaveSnapshot(ctx context.Context, email string, d domain.Domain, snap domain.Snapshot) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO preferences (email, domain, genres, era, favorites, languages, artists, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (email, domain) DO UPDATE SET
			genres = EXCLUDED.genres,
			era = EXCLUDED.era,
			favorites = EXCLUDED.favorites,
			languages = EXCLUDED.languages,
			artists = EXCLUDED.artists,
			updated_at = now()`,
		strings.ToLower(email), string(d),
		orEmpty(snap.Genres), snap.Era, orEmpty(snap.Favorites),
		orEmpty(snap.Languages), orEmpty(snap.Artists),
	)
	if err != nil {
		return fmt.Errorf("save preferences email=%s domain=%s: %w", email, d, err)
	}
	return nil
}

// orEmpty keeps nil slices out of NOT NULL array columns.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
