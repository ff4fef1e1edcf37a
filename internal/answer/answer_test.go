package answer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
	"docchat/internal/index"
	"docchat/internal/llm/ollama"
	"docchat/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	m.Run()
}

type stubGenerator struct {
	answer string
	err    error
	calls  int
}

func (g *stubGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	g.calls++
	return g.answer, g.err
}

func policyIndex(t *testing.T) *index.Index {
	t.Helper()
	return index.Build([]domain.Document{
		{Name: "Policy.pdf", Text: "Attendance is mandatory for all enrolled students during term time."},
	}, 900)
}

func TestAnswer(t *testing.T) {
	t.Run("no match returns fixed message without generation", func(t *testing.T) {
		gen := &stubGenerator{answer: "should not be used"}
		svc := NewService(gen, 4)
		got := svc.Answer(context.Background(), "quantum chromodynamics", policyIndex(t))
		assert.Equal(t, NoMatchMessage, got)
		assert.Zero(t, gen.calls)
	})

	t.Run("success returns backend text verbatim", func(t *testing.T) {
		gen := &stubGenerator{answer: "Attendance is mandatory."}
		svc := NewService(gen, 4)
		got := svc.Answer(context.Background(), "attendance rules", policyIndex(t))
		assert.Equal(t, "Attendance is mandatory.", got)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("failure falls back to excerpts", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("backend down")}
		svc := NewService(gen, 4)
		got := svc.Answer(context.Background(), "attendance rules", policyIndex(t))
		assert.True(t, strings.HasPrefix(got, "From **Policy.pdf**:"), "got %q", got)
		assert.Contains(t, got, "Attendance is mandatory")
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("fallback never empty with a match", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("always failing")}
		svc := NewService(gen, 4)
		got := svc.Answer(context.Background(), "students", policyIndex(t))
		assert.NotEmpty(t, got)
	})
}

func TestAnswerAgainstFailingBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gen := ollama.NewClient(ollama.Config{URL: server.URL})
	svc := NewService(gen, 4)
	got := svc.Answer(context.Background(), "attendance policy", policyIndex(t))
	assert.True(t, strings.HasPrefix(got, "From **Policy.pdf**:"), "got %q", got)
	assert.Contains(t, got, "Attendance is mandatory for all enrolled students")
}

func TestAssembleContext(t *testing.T) {
	matches := []domain.Match{
		{Score: 2, Chunk: domain.Chunk{Document: "a.pdf", Text: "first chunk"}},
		{Score: 1, Chunk: domain.Chunk{Document: "b.pdf", Text: "second chunk"}},
	}
	got := AssembleContext(matches)
	assert.Equal(t, "Document: a.pdf\nfirst chunk\n\n-----\n\nDocument: b.pdf\nsecond chunk", got)
}

func TestExcerpt(t *testing.T) {
	t.Run("one block per document in match order", func(t *testing.T) {
		matches := []domain.Match{
			{Chunk: domain.Chunk{Document: "a.pdf", Text: "alpha"}},
			{Chunk: domain.Chunk{Document: "b.pdf", Text: "beta"}},
		}
		got := Excerpt(matches)
		blocks := strings.Split(got, "\n\n---\n\n")
		require.Len(t, blocks, 2)
		assert.Equal(t, "From **a.pdf**:\n\nalpha", blocks[0])
		assert.Equal(t, "From **b.pdf**:\n\nbeta", blocks[1])
	})

	t.Run("long chunks reflowed to fixed width", func(t *testing.T) {
		long := strings.Repeat("attendance policy word ", 20)
		got := Excerpt([]domain.Match{{Chunk: domain.Chunk{Document: "p.pdf", Text: long}}})
		for _, line := range strings.Split(got, "\n") {
			assert.LessOrEqual(t, len(line), 90)
		}
	})
}
