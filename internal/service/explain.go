package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
	"github.com/tastefolio/personalization-service/internal/explain"
)

// ExplainOne explains a single recommended item. It looks for the item
// in the latest record first; if absent, it regenerates the full list
// without persisting anything, so the lookup cannot disturb the cache
// baseline. Only when the regenerated set also lacks the id does the
// call fail.
func (s *Service) ExplainOne(ctx context.Context, itemID, email, rawDomain string) (*domain.ItemExplanation, error) {
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

	var found *domain.Item
	if rec := s.latestRecord(ctx, email, string(d)); rec != nil {
		found = findItem(rec.Items, itemID)
	}

	if found == nil {
		items := s.generate(ctx, d, snap)
		if len(items) == 0 {
			items = s.seedItems(ctx, d)
		}
		found = findItem(items, itemID)
	}
	if found == nil {
		s.log.Info("explanation lookup missed",
			zap.String("email", email), zap.String("item", itemID))
		return nil, domain.ErrItemNotFound
	}

	explanation, score := explain.One(snap, *found, d)
	return &domain.ItemExplanation{ID: itemID, Explanation: explanation, Score: score}, nil
}

// ExplainGlobal reports the aggregate feature importances for a domain,
// independent of any user.
func (s *Service) ExplainGlobal(rawDomain string) (map[string]float64, error) {
	d, err := domain.ParseDomain(rawDomain)
	if err != nil {
		return nil, err
	}
	return explain.Global(d)
}

// findItem returns the first item with a matching id. Slug ids are not
// unique by construction; first match wins.
func findItem(items []domain.Item, id string) *domain.Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
