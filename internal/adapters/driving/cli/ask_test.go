package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarifbot/tarifbot/internal/core/domain"
	"github.com/tarifbot/tarifbot/internal/core/ports/driving"
	"github.com/tarifbot/tarifbot/internal/logger"
)

// mockAskService implements driving.AskService for testing.
type mockAskService struct {
	answer domain.Answer
	err    error

	questions []string
}

func (m *mockAskService) Ask(_ context.Context, question string) (domain.Answer, error) {
	m.questions = append(m.questions, question)
	if m.err != nil {
		return domain.Answer{}, m.err
	}
	return m.answer, nil
}

// setupAskService injects a mock ask service and returns a cleanup func.
func setupAskService(svc driving.AskService) func() {
	askService = svc
	return func() { askService = nil }
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "ask")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	svc := &mockAskService{answer: domain.Answer{
		Text:      "Karbonara tarifi: ...",
		Grounded:  true,
		Queries:   []string{"q1", "q2"},
		Retrieved: 5,
	}}
	cleanup := setupAskService(svc)
	defer cleanup()

	out, err := execute(t, "ask", "Spagetti karbonara nasıl yapılır?")

	require.NoError(t, err)
	assert.Contains(t, out, "Karbonara tarifi: ...")
	assert.Equal(t, []string{"Spagetti karbonara nasıl yapılır?"}, svc.questions)
}

func TestAskCmd_PrintsFallbackForUnmatchedQuestion(t *testing.T) {
	svc := &mockAskService{answer: domain.Answer{Text: domain.FallbackAnswer}}
	cleanup := setupAskService(svc)
	defer cleanup()

	out, err := execute(t, "ask", "uzay gemisi nasıl yapılır?")

	require.NoError(t, err)
	assert.Contains(t, out, domain.FallbackAnswer)
}

func TestAskCmd_VerboseShowsQueries(t *testing.T) {
	svc := &mockAskService{answer: domain.Answer{
		Text:      "cevap",
		Grounded:  true,
		Queries:   []string{"original", "variant"},
		Retrieved: 3,
	}}
	cleanup := setupAskService(svc)
	defer cleanup()
	defer func() {
		verbose = false
		logger.SetVerbose(false)
	}()

	out, err := execute(t, "--verbose", "ask", "soru")

	require.NoError(t, err)
	assert.Contains(t, out, "query[0]: original")
	assert.Contains(t, out, "query[1]: variant")
	assert.Contains(t, out, "documents: 3")
}

func TestAskCmd_ServiceFailure(t *testing.T) {
	svc := &mockAskService{err: errors.New("llm unreachable")}
	cleanup := setupAskService(svc)
	defer cleanup()

	_, err := execute(t, "ask", "soru")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm unreachable")
}
