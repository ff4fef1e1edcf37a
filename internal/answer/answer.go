// Package answer turns retrieved chunks into a final answer, preferring the
// generation backend and falling back to verbatim excerpts when it fails.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"docchat/internal/domain"
	"docchat/internal/index"
	"docchat/internal/logger"
	"docchat/internal/search"
)

// NoMatchMessage is returned when no chunk contains any query word.
const NoMatchMessage = "I could not find a matching answer to your question in the documents. " +
	"Try using different words that might appear in them."

// excerptWidth is the line width excerpts are reflowed to in fallback answers.
const excerptWidth = 90

// contextSeparator joins context blocks handed to the generation backend.
const contextSeparator = "\n\n-----\n\n"

// excerptSeparator joins document blocks in a fallback answer.
const excerptSeparator = "\n\n---\n\n"

// Service answers questions over an index using a generation backend.
type Service struct {
	gen        domain.Generator
	maxResults int
}

// NewService creates an answer service. maxResults bounds how many chunks are
// retrieved per question.
func NewService(gen domain.Generator, maxResults int) *Service {
	if maxResults <= 0 {
		maxResults = search.DefaultMaxResults
	}
	return &Service{gen: gen, maxResults: maxResults}
}

// Answer resolves query against idx. With no matches it returns the fixed
// not-found message without contacting the backend. With matches it makes one
// generation attempt; any backend failure falls back to a verbatim excerpt
// answer, so the result is never empty and errors never escape.
func (s *Service) Answer(ctx context.Context, query string, idx *index.Index) string {
	matches := search.Search(query, idx, s.maxResults)
	if len(matches) == 0 {
		return NoMatchMessage
	}

	generated, err := s.gen.Generate(ctx, query, AssembleContext(matches))
	if err != nil {
		logger.Warn("generation failed, answering from excerpts", "error", err)
		return Excerpt(matches)
	}
	return generated
}

// AssembleContext renders matches into the context block for the generation
// backend, one labeled section per chunk, in match order.
func AssembleContext(matches []domain.Match) string {
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = fmt.Sprintf("Document: %s\n%s", m.Chunk.Document, m.Chunk.Text)
	}
	return strings.Join(blocks, contextSeparator)
}

// Excerpt renders matches as a generation-free answer built only from text
// literally present in the source documents. It performs no I/O and never fails.
func Excerpt(matches []domain.Match) string {
	blocks := make([]string, len(matches))
	for i, m := range matches {
		wrapped := wordwrap.String(m.Chunk.Text, excerptWidth)
		blocks[i] = fmt.Sprintf("From **%s**:\n\n%s", m.Chunk.Document, wrapped)
	}
	return strings.Join(blocks, excerptSeparator)
}
