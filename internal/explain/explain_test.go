package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastefolio/personalization-service/internal/domain"
)

func TestOneIsPure(t *testing.T) {
	snap := domain.Snapshot{Genres: []string{"Action"}, Era: "Recent", Favorites: []string{"Inception"}}
	item := domain.Item{Title: "Inception", Year: "2010", Genres: []string{"Action", "Sci-Fi"}}

	e1, s1 := One(snap, item, domain.Movies)
	e2, s2 := One(snap, item, domain.Movies)
	assert.Equal(t, e1, e2)
	assert.Equal(t, s1, s2)
}

func TestOneScoreBounds(t *testing.T) {
	// maximal overlap stays within [0, 1]
	snap := domain.Snapshot{
		Genres:    []string{"Action", "Sci-Fi"},
		Era:       "Recent",
		Favorites: []string{"Inception"},
		Artists:   []string{"Hans Zimmer"},
	}
	item := domain.Item{
		Title:  "Inception",
		Year:   "2010",
		Genres: []string{"Action", "Sci-Fi"},
		Artist: "Hans Zimmer",
	}
	_, score := One(snap, item, domain.Music)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestOneOverlapRaisesScore(t *testing.T) {
	snap := domain.Snapshot{Genres: []string{"Action"}}
	matching := domain.Item{Title: "Mad Max", Genres: []string{"Action"}}
	unrelated := domain.Item{Title: "Amelie", Genres: []string{"Romance"}}

	_, matchScore := One(snap, matching, domain.Movies)
	explanation, missScore := One(snap, unrelated, domain.Movies)
	assert.Greater(t, matchScore, missScore)
	assert.Contains(t, explanation, "broadly popular")
}

func TestOneMentionsMatchedAttributes(t *testing.T) {
	snap := domain.Snapshot{Genres: []string{"Jazz"}, Artists: []string{"Miles Davis"}}
	item := domain.Item{Title: "So What", Artist: "Miles Davis", Genres: []string{"Jazz"}}

	explanation, _ := One(snap, item, domain.Music)
	assert.Contains(t, explanation, "Jazz")
	assert.Contains(t, explanation, "Miles Davis")
}

func TestOneBookCategoriesCountAsGenres(t *testing.T) {
	snap := domain.Snapshot{Genres: []string{"Fiction"}}
	item := domain.Item{Title: "1984", Categories: []string{"Fiction"}, PublishedDate: "1949-06-08"}

	explanation, _ := One(snap, item, domain.Books)
	assert.Contains(t, explanation, "Fiction")
}

func TestOneFavoriteOverlap(t *testing.T) {
	snap := domain.Snapshot{Favorites: []string{"The Hobbit"}}
	item := domain.Item{Title: "The Hobbit: An Unexpected Journey", Year: "2012"}

	explanation, _ := One(snap, item, domain.Movies)
	assert.Contains(t, explanation, "The Hobbit")
}

func TestItemsEnrichesEvery(t *testing.T) {
	snap := domain.Snapshot{Genres: []string{"Action"}}
	items := []domain.Item{
		{Title: "A", Genres: []string{"Action"}},
		{Title: "B"},
	}

	out := Items(snap, items, domain.Movies)
	require.Len(t, out, 2)
	for _, it := range out {
		assert.NotEmpty(t, it.Explanation)
		assert.Greater(t, it.Score, 0.0)
	}
	// input untouched
	assert.Empty(t, items[0].Explanation)
}

func TestGlobal(t *testing.T) {
	for _, d := range domain.AllDomains {
		weights, err := Global(d)
		require.NoError(t, err)
		assert.NotEmpty(t, weights)

		total := 0.0
		for _, w := range weights {
			total += w
		}
		assert.InDelta(t, 1.0, total, 0.001)
	}

	_, err := Global(domain.Domain("podcasts"))
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)
}
