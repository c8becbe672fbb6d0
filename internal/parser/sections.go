// Package parser segments free-text generator output. The grammar is
// deliberately small: a section starts at a line whose first token is
// "<Label>:" (case-insensitive, optionally preceded by a bullet), and
// its items are the following non-empty lines, stripped of list
// markers, until the next label or end of input.
package parser

import (
	"regexp"
	"strings"
)

// list markers the generator tends to prepend: "-", "*", "•" or "3." / "12)"
var markerRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// Lines splits single-domain output into candidate names: one per line,
// list markers and surrounding quotes removed, empties dropped.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if name := CleanLine(line); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Sections extracts one candidate list per label. Keys of the result
// are the lower-cased labels; a label absent from the text maps to an
// empty list rather than failing.
func Sections(text string, labels []string) map[string][]string {
	out := make(map[string][]string, len(labels))
	for _, l := range labels {
		out[strings.ToLower(l)] = nil
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		if label, rest, ok := matchLabel(line, labels); ok {
			current = label
			if name := CleanLine(rest); name != "" {
				out[current] = append(out[current], name)
			}
			continue
		}
		if current == "" {
			continue
		}
		if name := CleanLine(line); name != "" {
			out[current] = append(out[current], name)
		}
	}
	return out
}

// CleanLine strips a leading list marker, surrounding quotes and
// whitespace. A bare "1984" survives: only digits followed by "." or
// ")" count as numbering.
func CleanLine(line string) string {
	s := markerRe.ReplaceAllString(line, "")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

func matchLabel(line string, labels []string) (label, rest string, ok bool) {
	s := markerRe.ReplaceAllString(line, "")
	s = strings.TrimSpace(s)
	for _, l := range labels {
		if len(s) <= len(l) || !strings.EqualFold(s[:len(l)], l) {
			continue
		}
		tail := strings.TrimSpace(s[len(l):])
		if !strings.HasPrefix(tail, ":") {
			continue
		}
		return strings.ToLower(l), strings.TrimPrefix(tail, ":"), true
	}
	return "", "", false
}
