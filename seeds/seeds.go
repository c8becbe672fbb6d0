// Package seeds loads demo users and preference sets into an empty
// database so the API is usable immediately after first start.
package seeds

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type seedUser struct {
	name  string
	email string
}

var users = []seedUser{
	{"Alice", "a@x.com"},
	{"Ben", "ben@example.com"},
	{"Chitra", "chitra@example.com"},
}

type seedPreference struct {
	email     string
	domain    string
	genres    []string
	era       string
	favorites []string
	languages []string
	artists   []string
}

var preferences = []seedPreference{
	{
		email: "a@x.com", domain: "movies",
		genres: []string{"Action"}, era: "Recent", favorites: []string{"Inception"},
	},
	{
		email: "a@x.com", domain: "music",
		genres: []string{"Pop"}, era: "Recent", favorites: []string{"Blinding Lights"},
		languages: []string{"English"}, artists: []string{"The Weeknd"},
	},
	{
		email: "ben@example.com", domain: "books",
		genres: []string{"Science Fiction", "Fantasy"}, era: "Both",
		favorites: []string{"Dune", "The Hobbit"},
	},
	{
		email: "chitra@example.com", domain: "movies",
		genres: []string{"Drama", "Romance"}, era: "Classic", favorites: []string{"Casablanca"},
	},
}

func Setup(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	log.Info("seeding demo users")
	for _, u := range users {
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (name, email) VALUES ($1, $2)
			 ON CONFLICT (email) DO NOTHING`,
			u.name, u.email,
		); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	log.Info("seeding demo preferences")
	for _, p := range preferences {
		if _, err := pool.Exec(ctx,
			`INSERT INTO preferences (email, domain, genres, era, favorites, languages, artists)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (email, domain) DO NOTHING`,
			p.email, p.domain, orEmpty(p.genres), p.era, orEmpty(p.favorites),
			orEmpty(p.languages), orEmpty(p.artists),
		); err != nil {
			return fmt.Errorf("seed preferences %s/%s: %w", p.email, p.domain, err)
		}
	}

	log.Info("seeding complete", zap.Int("users", len(users)), zap.Int("preferences", len(preferences)))
	return nil
}

// orEmpty keeps nil slices out of NOT NULL array columns.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
