package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
	"docchat/internal/index"
	"docchat/internal/session"
)

type stubAnswerer struct {
	answer string
}

func (a *stubAnswerer) Answer(_ context.Context, _ string, _ *index.Index) string {
	return a.answer
}

func testIndex() *index.Index {
	return index.Build([]domain.Document{
		{Name: "Policy.pdf", Text: "Attendance is mandatory."},
	}, 900)
}

func TestNew(t *testing.T) {
	m := New(&stubAnswerer{}, testIndex(), session.New())
	assert.False(t, m.ready)
	assert.False(t, m.thinking)
	assert.Contains(t, m.status, "1 document(s) loaded")
}

func TestNewEmptyIndex(t *testing.T) {
	m := New(&stubAnswerer{}, index.Build(nil, 900), session.New())
	assert.Contains(t, m.status, "No documents available")
}

func TestUpdateWindowSize(t *testing.T) {
	m := New(&stubAnswerer{}, testIndex(), session.New())
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = mm.(Model)
	assert.True(t, m.ready)
	assert.GreaterOrEqual(t, m.viewport.Height, 3)
}

func TestSubmitAndAnswerFlow(t *testing.T) {
	log := session.New()
	m := New(&stubAnswerer{answer: "the answer"}, testIndex(), log)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = mm.(Model)

	m.input.SetValue("attendance policy")
	mm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.thinking)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, domain.RoleUser, log.Messages()[0].Role)
	assert.Equal(t, "attendance policy", log.Messages()[0].Content)
	assert.Empty(t, m.input.Value())

	mm, _ = m.Update(answerMsg{text: "the answer"})
	m = mm.(Model)
	assert.False(t, m.thinking)
	require.Equal(t, 2, log.Len())
	assert.Equal(t, domain.RoleAssistant, log.Messages()[1].Role)
	assert.Equal(t, "the answer", log.Messages()[1].Content)
}

func TestEmptyInputNotSubmitted(t *testing.T) {
	log := session.New()
	m := New(&stubAnswerer{}, testIndex(), log)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = mm.(Model)

	m.input.SetValue("   ")
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	assert.False(t, m.thinking)
	assert.Zero(t, log.Len())
}

func TestSubmitIgnoredWhileThinking(t *testing.T) {
	log := session.New()
	m := New(&stubAnswerer{}, testIndex(), log)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = mm.(Model)

	m.input.SetValue("first question")
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	require.Equal(t, 1, log.Len())

	m.input.SetValue("second question")
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)
	assert.Equal(t, 1, log.Len())
}

func TestCtrlCQuits(t *testing.T) {
	m := New(&stubAnswerer{}, testIndex(), session.New())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAskCommand(t *testing.T) {
	m := New(&stubAnswerer{answer: "grounded"}, testIndex(), session.New())
	msg := m.ask("any question")()
	ans, ok := msg.(answerMsg)
	require.True(t, ok)
	assert.Equal(t, "grounded", ans.text)
}
