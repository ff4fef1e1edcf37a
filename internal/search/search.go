// Package search ranks index chunks against a query by keyword containment.
package search

import (
	"sort"
	"strings"

	"docchat/internal/domain"
	"docchat/internal/index"
)

// DefaultMaxResults bounds how many chunks a query returns when none is configured.
const DefaultMaxResults = 4

// minWordLen filters out short noise words from queries.
const minWordLen = 3

// Search scores every chunk in the index by how many distinct query words it
// contains and returns the best matches, highest score first. Each query word
// counts once per chunk no matter how often it occurs. Chunks with equal
// scores keep their index order. An empty query, or one with no words longer
// than two characters, matches nothing.
func Search(query string, idx *index.Index, maxResults int) []domain.Match {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var words []string
	for _, w := range strings.Fields(query) {
		if len(w) >= minWordLen {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil
	}

	var matches []domain.Match
	for _, chunk := range idx.Chunks() {
		text := strings.ToLower(chunk.Text)
		score := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, domain.Match{Score: score, Chunk: chunk})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}
