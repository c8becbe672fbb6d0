package domain

import "strings"

// Item is one recommended title. Fields past Title are domain specific
// and populated only where the resolving provider supplies them; a
// degraded item may carry nothing but an ID and a Title.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Movies
	Year       string   `json:"year,omitempty"`
	Poster     string   `json:"poster,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	Overview   string   `json:"overview,omitempty"`
	IMDBRating string   `json:"imdbRating,omitempty"`

	// Books
	Authors       []string `json:"authors,omitempty"`
	Description   string   `json:"description,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`

	// Music
	Artist     string `json:"artist,omitempty"`
	Album      string `json:"album,omitempty"`
	Artwork    string `json:"artwork,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`

	// Enrichment
	Explanation string  `json:"explanation,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

// SlugID derives a stable id from the domain and title: lower-cased,
// runs of non-alphanumerics collapsed to a single dash. Distinct titles
// that normalize identically share an id; that is tolerated rather than
// deduplicated.
func SlugID(d Domain, title string) string {
	base := string(d) + "-" + title
	var b strings.Builder
	b.Grow(len(base))
	dash := false
	for _, r := range strings.ToLower(base) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
		} else if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return string(d) + "-unknown"
	}
	return slug
}
