// Package explain derives human-readable rationales and relevance
// scores from preference/item overlap. Everything here is a pure
// function of its inputs: same snapshot and item, same output.
package explain

import (
	"fmt"
	"math"
	"strings"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// Scoring weights. The base keeps every recommended item above zero;
// the rest reward explicit preference overlap.
const (
	baseScore      = 0.35
	genreWeight    = 0.30
	artistWeight   = 0.15
	favoriteWeight = 0.12
	eraWeight      = 0.08
)

// Items enriches each item with an explanation and a score in [0, 1].
func Items(snap domain.Snapshot, items []domain.Item, d domain.Domain) []domain.Item {
	out := make([]domain.Item, len(items))
	for i, it := range items {
		explanation, score := One(snap, it, d)
		it.Explanation = explanation
		it.Score = score
		out[i] = it
	}
	return out
}

// One explains a single item against a snapshot.
func One(snap domain.Snapshot, item domain.Item, d domain.Domain) (string, float64) {
	score := baseScore
	var reasons []string

	if matched := matchedGenres(snap, item); len(matched) > 0 {
		frac := float64(len(matched)) / float64(max(len(snap.Genres), 1))
		score += genreWeight * math.Min(frac*2, 1)
		reasons = append(reasons, fmt.Sprintf("matches your %s taste", strings.Join(matched, ", ")))
	}

	if d == domain.Music && item.Artist != "" && snap.HasArtist(item.Artist) {
		score += artistWeight
		reasons = append(reasons, fmt.Sprintf("by %s, one of your saved artists", item.Artist))
	}

	if fav := relatedFavorite(snap, item); fav != "" {
		score += favoriteWeight
		reasons = append(reasons, fmt.Sprintf("close to your favorite %q", fav))
	}

	if eraMatches(snap.Era, item) {
		score += eraWeight
		reasons = append(reasons, fmt.Sprintf("fits your preferred %s era", strings.ToLower(snap.Era)))
	}

	score = math.Round(math.Min(score, 1)*1000) / 1000

	if len(reasons) == 0 {
		return fmt.Sprintf("A broadly popular %s pick that expands beyond your stated preferences.", d.Singular()), score
	}
	return fmt.Sprintf("Recommended because it %s.", strings.Join(reasons, " and ")), score
}

// Global returns the aggregate feature importances driving
// recommendations for a domain, independent of any user.
func Global(d domain.Domain) (map[string]float64, error) {
	switch d {
	case domain.Movies:
		return map[string]float64{
			"genre_affinity":       0.42,
			"favorites_similarity": 0.31,
			"era_match":            0.18,
			"popularity":           0.09,
		}, nil
	case domain.Books:
		return map[string]float64{
			"genre_affinity":       0.40,
			"favorites_similarity": 0.33,
			"era_match":            0.15,
			"author_affinity":      0.12,
		}, nil
	case domain.Music:
		return map[string]float64{
			"artist_affinity":      0.38,
			"genre_affinity":       0.27,
			"language_match":       0.20,
			"favorites_similarity": 0.15,
		}, nil
	default:
		return nil, domain.ErrInvalidDomain
	}
}

// itemAttributes are whatever genre-like tags the provider supplied:
// Genres for movies, Categories for books.
func itemAttributes(item domain.Item) []string {
	if len(item.Genres) > 0 {
		return item.Genres
	}
	return item.Categories
}

func matchedGenres(snap domain.Snapshot, item domain.Item) []string {
	var matched []string
	for _, attr := range itemAttributes(item) {
		if snap.HasGenre(attr) {
			matched = append(matched, attr)
		}
	}
	return matched
}

// relatedFavorite finds a favorite whose title overlaps the item's, in
// either direction, so "The Hobbit" relates to "The Hobbit: An
// Unexpected Journey".
func relatedFavorite(snap domain.Snapshot, item domain.Item) string {
	title := strings.ToLower(item.Title)
	if title == "" {
		return ""
	}
	for _, fav := range snap.Favorites {
		f := strings.ToLower(fav)
		if f == "" {
			continue
		}
		if strings.Contains(title, f) || strings.Contains(f, title) {
			return fav
		}
	}
	return ""
}

func eraMatches(era string, item domain.Item) bool {
	year := releaseYear(item)
	if year == 0 {
		return false
	}
	switch strings.ToLower(era) {
	case "recent":
		return year >= 2000
	case "classic":
		return year < 2000
	case "both":
		return true
	default:
		return false
	}
}

func releaseYear(item domain.Item) int {
	raw := item.Year
	if raw == "" {
		raw = item.PublishedDate
	}
	if len(raw) < 4 {
		return 0
	}
	year := 0
	for _, r := range raw[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}
