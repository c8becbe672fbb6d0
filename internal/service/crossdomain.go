package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
	"github.com/tastefolio/personalization-service/internal/metrics"
	"github.com/tastefolio/personalization-service/internal/parser"
)

var crossLabels = []string{"Movies", "Music", "Books"}

// GetCrossDomain blends the three domains around one seed. A single
// generator call produces all three labeled sub-lists so the picks stay
// thematically coherent; three independent calls would not. There is no
// snapshot-based reuse here: the seed varies per call, so every call
// regenerates.
//
// seed is the free-text query when fromQuery is true, otherwise a base
// domain name (empty defaults to music).
func (s *Service) GetCrossDomain(ctx context.Context, email, seed string, fromQuery bool) (*domain.CrossDomainResult, error) {
	if _, err := s.store.FindUserByEmail(ctx, email); err != nil {
		return nil, err
	}

	tag := "cross-query"
	if !fromQuery {
		if seed == "" {
			seed = string(domain.Music)
		}
		tag = "cross-" + seed
	}

	text, err := s.generator.Generate(ctx, buildCrossPrompt(seed))
	if err != nil {
		metrics.GeneratorFailures.Inc()
		s.log.Warn("generator down, serving cross-domain fallback",
			zap.String("email", email), zap.Error(err))
		return &domain.CrossDomainResult{
			BaseQuery:       seed,
			Recommendations: fallbackCross(),
		}, nil
	}

	sections := parser.Sections(text, crossLabels)

	var cross domain.CrossItems
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		cross.Movies = s.resolveAll(ctx, domain.Movies, sections["movies"])
	}()
	go func() {
		defer wg.Done()
		cross.Music = s.resolveAll(ctx, domain.Music, sections["music"])
	}()
	go func() {
		defer wg.Done()
		cross.Books = s.resolveAll(ctx, domain.Books, sections["books"])
	}()
	wg.Wait()

	// Every domain carries at least the fallback pair.
	if len(cross.Movies) == 0 {
		cross.Movies = fallbackItems(domain.Movies)
	}
	if len(cross.Music) == 0 {
		cross.Music = fallbackItems(domain.Music)
	}
	if len(cross.Books) == 0 {
		cross.Books = fallbackItems(domain.Books)
	}

	rec := &domain.Record{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(email),
		Domain:    tag,
		Cross:     &cross,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertRecord(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info("generated cross-domain recommendations",
		zap.String("email", email), zap.String("seed", seed),
		zap.Int("movies", len(cross.Movies)), zap.Int("music", len(cross.Music)),
		zap.Int("books", len(cross.Books)))
	return &domain.CrossDomainResult{BaseQuery: seed, Recommendations: cross}, nil
}
