// Package session holds the conversation log for one interactive session.
package session

import "docchat/internal/domain"

// Log is an append-only ordered sequence of conversation messages. It is
// owned by a single session and is not safe for concurrent use; a session
// handles one request at a time.
type Log struct {
	messages []domain.Message
}

// New creates an empty conversation log.
func New() *Log { return &Log{} }

// Append adds a message to the end of the log.
func (l *Log) Append(role domain.Role, content string) {
	l.messages = append(l.messages, domain.Message{Role: role, Content: content})
}

// Messages returns the logged messages in order. Callers must not modify
// the returned slice.
func (l *Log) Messages() []domain.Message { return l.messages }

// Len returns the number of logged messages.
func (l *Log) Len() int { return len(l.messages) }
