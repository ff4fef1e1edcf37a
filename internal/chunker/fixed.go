package chunker

import "strings"

// DefaultChunkSize is the number of characters per chunk when none is configured.
const DefaultChunkSize = 900

// Split partitions text into consecutive, non-overlapping pieces of at most
// size characters. Boundaries are computed from raw character offsets; each
// piece is trimmed of surrounding whitespace afterwards, and pieces that trim
// to empty are dropped without shifting later boundaries.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk == "" {
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
