package service

import (
	"fmt"
	"strings"

	"github.com/tastefolio/personalization-service/internal/domain"
)

func buildPrompt(d domain.Domain, snap domain.Snapshot) string {
	genres := joinOr(snap.Genres, "any genre")
	favorites := joinOr(snap.Favorites, "none")
	era := snap.Era
	if era == "" {
		era = "any era"
	}

	noun := "movies"
	switch d {
	case domain.Books:
		noun = "books"
	case domain.Music:
		noun = "songs or artists"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert in recommending %s.\n", d)
	fmt.Fprintf(&b, "Suggest 5 %s that align with these preferences:\n\n", noun)
	fmt.Fprintf(&b, "Genres: %s\n", genres)
	fmt.Fprintf(&b, "Favorites: %s\n", favorites)
	fmt.Fprintf(&b, "Era: %s\n", era)
	if d == domain.Music {
		if len(snap.Artists) > 0 {
			fmt.Fprintf(&b, "Favorite artists: %s\n", strings.Join(snap.Artists, ", "))
		}
		if len(snap.Languages) > 0 {
			fmt.Fprintf(&b, "Languages: %s\n", strings.Join(snap.Languages, ", "))
		}
	}
	fmt.Fprintf(&b, "\nFocus on similar mood, tone, and storytelling style. Output plain %s names, one per line, no numbering.\n", d.Singular())
	return b.String()
}

func buildCrossPrompt(seed string) string {
	return fmt.Sprintf(`User Query: %q
Suggest 3 relevant Movies, Music, and Books for this mood.

Movies:
- ...
Music:
- ...
Books:
- ...

Only plain text lists.
`, seed)
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
