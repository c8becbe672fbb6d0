// Package resolver adapts the external metadata providers (OMDb,
// Google Books, iTunes Search) behind a single lookup capability.
package resolver

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// DetailResolver turns a candidate name into normalized item metadata.
// A nil item with a nil error means the provider had no match; the
// candidate is dropped without failing the request.
type DetailResolver interface {
	Resolve(ctx context.Context, d domain.Domain, name string) (*domain.Item, error)
}

// HTTP is the production resolver. Base URLs are fields so tests can
// point it at local servers.
type HTTP struct {
	client   *http.Client
	omdbKey  string
	booksKey string
	log      *zap.Logger

	omdbURL   string
	booksURL  string
	itunesURL string
}

func NewHTTP(omdbKey, booksKey string, log *zap.Logger) *HTTP {
	return &HTTP{
		client:    &http.Client{},
		omdbKey:   omdbKey,
		booksKey:  booksKey,
		log:       log,
		omdbURL:   "https://www.omdbapi.com/",
		booksURL:  "https://www.googleapis.com/books/v1/volumes",
		itunesURL: "https://itunes.apple.com/search",
	}
}

// WithEndpoints overrides provider URLs; used by tests.
func (h *HTTP) WithEndpoints(omdb, books, itunes string) *HTTP {
	h.omdbURL, h.booksURL, h.itunesURL = omdb, books, itunes
	return h
}

func (h *HTTP) Resolve(ctx context.Context, d domain.Domain, name string) (*domain.Item, error) {
	var item *domain.Item
	var err error

	switch d {
	case domain.Movies:
		item, err = h.movie(ctx, name)
	case domain.Books:
		item, err = h.book(ctx, name)
	case domain.Music:
		item, err = h.music(ctx, name)
	default:
		return nil, domain.ErrInvalidDomain
	}

	if err == nil && item == nil {
		h.log.Debug("no provider match", zap.String("domain", string(d)), zap.String("name", name))
	}
	return item, err
}
