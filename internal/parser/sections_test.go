package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var crossLabels = []string{"Movies", "Music", "Books"}

func TestSectionsWellFormed(t *testing.T) {
	text := `Movies:
- Inception
- Interstellar
Music:
- Blinding Lights
Books:
- The Alchemist
- 1984`

	got := Sections(text, crossLabels)
	assert.Equal(t, []string{"Inception", "Interstellar"}, got["movies"])
	assert.Equal(t, []string{"Blinding Lights"}, got["music"])
	assert.Equal(t, []string{"The Alchemist", "1984"}, got["books"])
}

func TestSectionsMissingSection(t *testing.T) {
	text := `Movies:
- Inception
Music:
- Blinding Lights`

	got := Sections(text, crossLabels)
	assert.Empty(t, got["books"])
	assert.Len(t, got["movies"], 1)
}

func TestSectionsTolerantOfNoiseAndCase(t *testing.T) {
	text := `Sure! Here are some picks.

  movies :
  1. "The Matrix"
  2) Blade Runner

* MUSIC:
   • Clair de Lune

Books:`

	got := Sections(text, crossLabels)
	assert.Equal(t, []string{"The Matrix", "Blade Runner"}, got["movies"])
	assert.Equal(t, []string{"Clair de Lune"}, got["music"])
	assert.Empty(t, got["books"])
}

func TestSectionsInlineFirstItem(t *testing.T) {
	got := Sections("Movies: Arrival\nMusic: Time", crossLabels)
	assert.Equal(t, []string{"Arrival"}, got["movies"])
	assert.Equal(t, []string{"Time"}, got["music"])
}

func TestSectionsEmptyInput(t *testing.T) {
	got := Sections("", crossLabels)
	assert.Empty(t, got["movies"])
	assert.Empty(t, got["music"])
	assert.Empty(t, got["books"])
}

func TestLines(t *testing.T) {
	text := "- Dune\n\n2. \"The Hobbit\"  \n* 1984\nNotes from Underground"
	assert.Equal(t, []string{"Dune", "The Hobbit", "1984", "Notes from Underground"}, Lines(text))
}

func TestCleanLineKeepsNumericTitles(t *testing.T) {
	assert.Equal(t, "1984", CleanLine("1984"))
	assert.Equal(t, "1984", CleanLine("3. 1984"))
	assert.Equal(t, "99 Luftballons", CleanLine("- 99 Luftballons"))
}
