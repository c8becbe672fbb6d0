package domain

import "time"

// Source describes how a recommendation result was produced.
type Source string

const (
	SourceCache         Source = "cache"
	SourceNew           Source = "new"
	SourceFallback      Source = "fallback"
	SourceForcedRefresh Source = "forced-refresh"
)

// CrossItems holds the three sub-lists of a cross-domain blend.
type CrossItems struct {
	Movies []Item `json:"movies"`
	Music  []Item `json:"music"`
	Books  []Item `json:"books"`
}

// Record is one generated recommendation set. Records are append-only;
// the most recent record per (email, domain) is the effective cache
// entry. Single-domain records carry Items; cross-domain records carry
// Cross and a synthetic domain tag ("cross-query" or "cross-<base>").
type Record struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Domain    string      `json:"domain"`
	Items     []Item      `json:"items,omitempty"`
	Cross     *CrossItems `json:"cross,omitempty"`
	Snapshot  Snapshot    `json:"preferencesSnapshot"`
	CreatedAt time.Time   `json:"createdAt"`
}

// RecommendationResult is the orchestrator's single-domain response.
type RecommendationResult struct {
	Items  []Item `json:"items"`
	Source Source `json:"source"`
}

// CrossDomainResult is the orchestrator's blend response.
type CrossDomainResult struct {
	BaseQuery       string     `json:"baseQuery"`
	Recommendations CrossItems `json:"recommendations"`
}

// ItemExplanation is the per-item explanation lookup response.
type ItemExplanation struct {
	ID          string  `json:"id"`
	Explanation string  `json:"explanation"`
	Score       float64 `json:"score"`
}
