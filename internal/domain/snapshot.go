package domain

import (
	"slices"
	"strings"
)

// Snapshot is the preference state for one (user, domain) pair, captured
// alongside every generated recommendation set. Comparing the stored
// snapshot against the current one is what decides cache reuse.
type Snapshot struct {
	Genres    []string `json:"genres"`
	Era       string   `json:"era"`
	Favorites []string `json:"favorites"`
	Languages []string `json:"languages,omitempty"`
	Artists   []string `json:"artists,omitempty"`
}

// Equal reports structural equality. Genres, Languages and Artists are
// compared as sets; Favorites is a ranked list, so its order matters.
// Reordering favorites therefore invalidates the cache.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Era != other.Era {
		return false
	}
	if !slices.Equal(s.Favorites, other.Favorites) {
		return false
	}
	return equalSets(s.Genres, other.Genres) &&
		equalSets(s.Languages, other.Languages) &&
		equalSets(s.Artists, other.Artists)
}

// IsZero reports whether no preference has been saved yet.
func (s Snapshot) IsZero() bool {
	return len(s.Genres) == 0 && s.Era == "" && len(s.Favorites) == 0 &&
		len(s.Languages) == 0 && len(s.Artists) == 0
}

// HasGenre matches case-insensitively.
func (s Snapshot) HasGenre(genre string) bool {
	for _, g := range s.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// HasArtist matches case-insensitively.
func (s Snapshot) HasArtist(artist string) bool {
	for _, a := range s.Artists {
		if strings.EqualFold(a, artist) {
			return true
		}
	}
	return false
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
