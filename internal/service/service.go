package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
	"github.com/tastefolio/personalization-service/internal/explain"
	"github.com/tastefolio/personalization-service/internal/metrics"
	"github.com/tastefolio/personalization-service/internal/parser"
)

const (
	historyLimit       = 5
	defaultConcurrency = 10
	defaultLookup      = 8 * time.Second
)

// Store is the durable side: users, preference snapshots and the
// append-only recommendation log.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetSnapshot(ctx context.Context, email string, d domain.Domain) (domain.Snapshot, error)
	SaveSnapshot(ctx context.Context, email string, d domain.Domain, snap domain.Snapshot) error
	InsertRecord(ctx context.Context, rec *domain.Record) error
	LatestRecord(ctx context.Context, email, dom string) (*domain.Record, error)
	History(ctx context.Context, email string, limit int) ([]domain.Record, error)
}

// RecordCache is the keyed latest-record lookaside in front of the log.
type RecordCache interface {
	Get(ctx context.Context, email, dom string) (*domain.Record, error)
	Set(ctx context.Context, rec *domain.Record) error
	Clear(ctx context.Context, email, dom string) error
}

// NameGenerator produces raw candidate-name text for a prompt.
type NameGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DetailResolver turns one candidate name into item metadata, or
// (nil, nil) when the provider has no match.
type DetailResolver interface {
	Resolve(ctx context.Context, d domain.Domain, name string) (*domain.Item, error)
}

// Config tunes per-request fan-out behavior.
type Config struct {
	LookupTimeout      time.Duration
	ResolveConcurrency int
}

// Options control a single recommendation read.
type Options struct {
	Explain bool
	Force   bool
}

type Service struct {
	store       Store
	cache       RecordCache
	generator   NameGenerator
	resolver    DetailResolver
	log         *zap.Logger
	lookup      time.Duration
	concurrency int
}

func NewService(store Store, cache RecordCache, gen NameGenerator, res DetailResolver, log *zap.Logger, cfg Config) *Service {
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = defaultLookup
	}
	if cfg.ResolveConcurrency <= 0 {
		cfg.ResolveConcurrency = defaultConcurrency
	}
	return &Service{
		store:       store,
		cache:       cache,
		generator:   gen,
		resolver:    res,
		log:         log,
		lookup:      cfg.LookupTimeout,
		concurrency: cfg.ResolveConcurrency,
	}
}

// GetRecommendations is the main read path. The decision rule, in
// priority order: force always regenerates; an unchanged preference
// snapshot serves the prior record; anything else regenerates. A failed
// regeneration degrades to the stale record, then to the built-in seed
// list, never to an error or an empty result.
func (s *Service) GetRecommendations(ctx context.Context, email, rawDomain string, opts Options) (*domain.RecommendationResult, error) {
	d, err := domain.ParseDomain(rawDomain)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindUserByEmail(ctx, email); err != nil {
		return nil, err
	}

	snap, err := s.store.GetSnapshot(ctx, email, d)
	if err != nil {
		return nil, err
	}

	prior := s.latestRecord(ctx, email, string(d))

	if !opts.Force && prior != nil && prior.Snapshot.Equal(snap) {
		metrics.CacheHits.Inc()
		s.log.Info("serving cached recommendations",
			zap.String("email", email), zap.String("domain", string(d)))
		return &domain.RecommendationResult{Items: prior.Items, Source: domain.SourceCache}, nil
	}
	metrics.CacheMisses.Inc()

	items := s.generate(ctx, d, snap)

	source := domain.SourceNew
	if opts.Force {
		source = domain.SourceForcedRefresh
	}

	if len(items) == 0 {
		// Generator down or nothing resolved: prefer stale over empty.
		if prior != nil {
			s.log.Warn("generation failed, serving stale record",
				zap.String("email", email), zap.String("domain", string(d)))
			return &domain.RecommendationResult{Items: prior.Items, Source: domain.SourceCache}, nil
		}
		items = s.seedItems(ctx, d)
		source = domain.SourceFallback
	}

	if opts.Explain {
		items = explain.Items(snap, items, d)
	}

	// Persist even degraded results; the record is the cache baseline
	// for the next read.
	rec := &domain.Record{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(email),
		Domain:    string(d),
		Items:     items,
		Snapshot:  snap,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertRecord(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, rec); err != nil {
		s.log.Warn("cache set failed", zap.String("email", email), zap.Error(err))
	}

	metrics.RecordsGenerated.WithLabelValues(string(source)).Inc()
	s.log.Info("generated recommendations",
		zap.String("email", email), zap.String("domain", string(d)),
		zap.Int("count", len(items)), zap.String("source", string(source)))
	return &domain.RecommendationResult{Items: items, Source: source}, nil
}

// History returns the user's most recent records, newest first,
// across all domain tags.
func (s *Service) History(ctx context.Context, email string) ([]domain.Record, error) {
	records, err := s.store.History(ctx, email, historyLimit)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// generate runs the name generator and resolves the results. An empty
// return means the whole attempt failed; callers apply the fallback
// chain.
func (s *Service) generate(ctx context.Context, d domain.Domain, snap domain.Snapshot) []domain.Item {
	text, err := s.generator.Generate(ctx, buildPrompt(d, snap))
	if err != nil {
		metrics.GeneratorFailures.Inc()
		s.log.Warn("name generator failed", zap.String("domain", string(d)), zap.Error(err))
		return nil
	}

	names := parser.Lines(text)
	if len(names) == 0 {
		metrics.GeneratorFailures.Inc()
		s.log.Warn("name generator returned no names", zap.String("domain", string(d)))
		return nil
	}

	return s.resolveAll(ctx, d, names)
}

// resolveAll fans out one detail lookup per distinct name, bounded by
// the configured concurrency. Individual failures drop that candidate
// only; surviving items keep the generator's order.
func (s *Service) resolveAll(ctx context.Context, d domain.Domain, names []string) []domain.Item {
	distinct := dedupe(names)

	results := make([]*domain.Item, len(distinct))
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency) // semaphore

	for i, name := range distinct {
		wg.Add(1)
		go func(idx int, n string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			lctx, cancel := context.WithTimeout(ctx, s.lookup)
			defer cancel()

			item, err := s.resolver.Resolve(lctx, d, n)
			if err != nil {
				metrics.LookupsDropped.Inc()
				s.log.Warn("detail lookup dropped",
					zap.String("domain", string(d)), zap.String("name", n), zap.Error(err))
				return
			}
			if item == nil {
				return
			}
			item.ID = domain.SlugID(d, item.Title)
			results[idx] = item
		}(i, name)
	}
	wg.Wait()

	items := make([]domain.Item, 0, len(distinct))
	for _, it := range results {
		if it != nil {
			items = append(items, *it)
		}
	}
	return items
}

// latestRecord reads the effective cache entry: redis first, Postgres
// on a miss (backfilling redis). Cache errors degrade to the store.
func (s *Service) latestRecord(ctx context.Context, email, dom string) *domain.Record {
	rec, err := s.cache.Get(ctx, email, dom)
	if err != nil {
		s.log.Warn("cache get failed", zap.String("email", email), zap.Error(err))
	}
	if rec != nil {
		return rec
	}

	rec, err = s.store.LatestRecord(ctx, email, dom)
	if err != nil {
		s.log.Warn("latest record query failed", zap.String("email", email), zap.Error(err))
		return nil
	}
	if rec != nil {
		if err := s.cache.Set(ctx, rec); err != nil {
			s.log.Warn("cache backfill failed", zap.String("email", email), zap.Error(err))
		}
	}
	return rec
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
