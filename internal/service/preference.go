package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// SavePreferences stores a new preference set for a (user, domain)
// pair and drops the redis copy of the latest record so the next read
// compares against the stored snapshot. Regeneration itself happens on
// that next read, not here.
func (s *Service) SavePreferences(ctx context.Context, email, rawDomain string, snap domain.Snapshot) error {
	d, err := domain.ParseDomain(rawDomain)
	if err != nil {
		return err
	}
	if _, err := s.store.FindUserByEmail(ctx, email); err != nil {
		return err
	}

	if err := s.store.SaveSnapshot(ctx, email, d, snap); err != nil {
		return err
	}
	if err := s.cache.Clear(ctx, email, string(d)); err != nil {
		s.log.Warn("cache clear failed", zap.String("email", email), zap.Error(err))
	}

	s.log.Info("preferences saved", zap.String("email", email), zap.String("domain", string(d)))
	return nil
}

// GetPreferences returns the stored preference set; a user who has
// never saved one gets a zero snapshot.
func (s *Service) GetPreferences(ctx context.Context, email, rawDomain string) (domain.Snapshot, error) {
	d, err := domain.ParseDomain(rawDomain)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if _, err := s.store.FindUserByEmail(ctx, email); err != nil {
		return domain.Snapshot{}, err
	}
	return s.store.GetSnapshot(ctx, email, d)
}
