package domain

import "context"

// Document is a single source document loaded into the system.
type Document struct {
	Name string
	Text string
}

// Chunk is a bounded fragment of a document's text, the atomic unit of retrieval.
type Chunk struct {
	Document string
	Text     string
}

// Match is a chunk that matched a query, with its containment score.
type Match struct {
	Score int
	Chunk Chunk
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's conversation log.
type Message struct {
	Role    Role
	Content string
}

// Source lists the documents available at a location.
// Implementations skip unreadable documents instead of failing the listing.
type Source interface {
	ListDocuments(dir string) ([]Document, error)
}

// Generator produces an answer to a question grounded in the supplied context.
type Generator interface {
	Generate(ctx context.Context, question, docContext string) (string, error)
}
