package service

import (
	"context"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// seedTitles are the last-resort names per domain when generation fails
// with no cached record to fall back on.
var seedTitles = map[domain.Domain][]string{
	domain.Movies: {"Inception", "Interstellar", "Titanic"},
	domain.Books:  {"Harry Potter", "The Hobbit", "1984"},
	domain.Music:  {"Blinding Lights", "Shape of You", "Bohemian Rhapsody"},
}

// fallbackCatalog is the fixed cross-domain backfill: two fully
// populated items per domain, served when a domain resolves to nothing
// or the generator is down entirely.
var fallbackCatalog = map[domain.Domain][]domain.Item{
	domain.Movies: {
		{
			Title:    "Inception",
			Year:     "2010",
			Overview: "A skilled thief uses dream-sharing technology for corporate espionage.",
			Poster:   "https://m.media-amazon.com/images/I/51FCK3VfBLL._AC_.jpg",
		},
		{
			Title:    "Interstellar",
			Year:     "2014",
			Overview: "A team travels through a wormhole in search of a new home for humanity.",
			Poster:   "https://m.media-amazon.com/images/I/81tEgsxpNZS._AC_SL1500_.jpg",
		},
	},
	domain.Books: {
		{
			Title:       "The Alchemist",
			Authors:     []string{"Paulo Coelho"},
			Description: "A story about following your dreams and destiny.",
			Thumbnail:   "https://covers.openlibrary.org/b/id/240726-L.jpg",
		},
		{
			Title:       "1984",
			Authors:     []string{"George Orwell"},
			Description: "A dystopian novel exploring government surveillance and freedom.",
			Thumbnail:   "https://covers.openlibrary.org/b/id/7222246-L.jpg",
		},
	},
	domain.Music: {
		{
			Title:   "Blinding Lights",
			Artist:  "The Weeknd",
			Artwork: "https://upload.wikimedia.org/wikipedia/en/0/09/The_Weeknd_-_Blinding_Lights.png",
		},
		{
			Title:   "Shape of You",
			Artist:  "Ed Sheeran",
			Artwork: "https://upload.wikimedia.org/wikipedia/en/4/45/Shape_Of_You_%28Official_Single_Cover%29_by_Ed_Sheeran.png",
		},
	},
}

// fallbackItems returns the domain's fixed backfill pair with ids
// assigned.
func fallbackItems(d domain.Domain) []domain.Item {
	src := fallbackCatalog[d]
	items := make([]domain.Item, len(src))
	for i, it := range src {
		it.ID = domain.SlugID(d, it.Title)
		items[i] = it
	}
	return items
}

func fallbackCross() domain.CrossItems {
	return domain.CrossItems{
		Movies: fallbackItems(domain.Movies),
		Music:  fallbackItems(domain.Music),
		Books:  fallbackItems(domain.Books),
	}
}

// seedItems resolves the seed titles so even the degraded path carries
// real metadata where the providers are reachable. When nothing
// resolves, title-only items are returned instead of an empty list.
func (s *Service) seedItems(ctx context.Context, d domain.Domain) []domain.Item {
	titles := seedTitles[d]

	items := s.resolveAll(ctx, d, titles)
	if len(items) > 0 {
		return items
	}

	items = make([]domain.Item, len(titles))
	for i, title := range titles {
		items[i] = domain.Item{ID: domain.SlugID(d, title), Title: title}
	}
	return items
}
