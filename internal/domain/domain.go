package domain

import "strings"

// Domain is a supported content category.
type Domain string

const (
	Movies Domain = "movies"
	Books  Domain = "books"
	Music  Domain = "music"
)

// AllDomains lists the supported categories in canonical order.
var AllDomains = []Domain{Movies, Books, Music}

// ParseDomain validates a category name from request input.
func ParseDomain(s string) (Domain, error) {
	switch Domain(strings.ToLower(strings.TrimSpace(s))) {
	case Movies:
		return Movies, nil
	case Books:
		return Books, nil
	case Music:
		return Music, nil
	default:
		return "", ErrInvalidDomain
	}
}

// Singular returns the singular noun used in prompts ("movie", "book", "music").
func (d Domain) Singular() string {
	switch d {
	case Movies:
		return "movie"
	case Books:
		return "book"
	default:
		return "music"
	}
}

func (d Domain) String() string {
	return string(d)
}
