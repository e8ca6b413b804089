package notes

import "strings"

// Filter returns the subsequence of notes whose title or content contains
// query as a case-insensitive substring, preserving the input order. The
// query is trimmed and lowercased first; an empty query returns the input
// slice unchanged. No tokenization, ranking, or fuzzy matching.
func Filter(collection []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return collection
	}

	filtered := make([]Note, 0, len(collection))
	for _, n := range collection {
		haystack := strings.ToLower(n.Title + " " + n.Content)
		if strings.Contains(haystack, q) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
