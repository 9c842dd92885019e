package search

import "strings"

// Searchable exposes the free-text fields a result is matched against.
type Searchable interface {
	SearchFields() []string
}

// FirstWord returns the case-folded first whitespace-separated token of query.
func FirstWord(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Matches reports whether any searchable field contains word. word must already be lower case.
func Matches(item Searchable, word string) bool {
	for _, f := range item.SearchFields() {
		if strings.Contains(strings.ToLower(f), word) {
			return true
		}
	}
	return false
}

// Rank moves items matching the query's first word ahead of the rest.
// Both groups keep their input order. A blank query returns items unchanged.
func Rank[T Searchable](items []T, query string) []T {
	word := FirstWord(query)
	if word == "" {
		return items
	}

	ranked := make([]T, 0, len(items))
	var rest []T
	for _, item := range items {
		if Matches(item, word) {
			ranked = append(ranked, item)
		} else {
			rest = append(rest, item)
		}
	}
	return append(ranked, rest...)
}
