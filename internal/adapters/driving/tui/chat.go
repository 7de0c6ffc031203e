// Package tui implements the interactive chat interface on Bubble Tea.
// Each question runs the full answering pipeline; the transcript keeps
// the conversation on screen, but answers are independent of each other.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tarifbot/tarifbot/internal/core/ports/driving"
)

const (
	chatTitle       = "Yemek Tarifi Asistanı"
	chatDescription = "Malzemelerinize veya canınızın çektiği bir yemeğe göre tarifler sorun. Ben sizin için bulurum!"
	thinkingStatus  = "Düşünüyorum..."
	readyStatus     = "Sorunuzu yazın ve Enter'a basın. Çıkmak için Ctrl+C."
)

// ExampleQuestions are shown before the first question is asked.
var ExampleQuestions = []string{
	"Spagetti karbonara nasıl yapılır?",
	"Tavuk ve mantar ile yapabileceğim bir yemek önerir misin?",
	"Çikolatalı bir tatlı tarifi önerir misin?",
	"Elimde patates, soğan ve kıyma var. Ne yapabilirim?",
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	descStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// answerMsg carries a finished answer back into the event loop.
type answerMsg struct {
	question string
	text     string
}

// answerErrMsg carries a pipeline failure back into the event loop.
type answerErrMsg struct {
	question string
	err      error
}

// turn is one question/answer pair in the transcript.
type turn struct {
	question string
	answer   string
	failed   bool
}

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	service  driving.AskService
	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	status   string
	thinking bool
	ready    bool
}

// New creates a new chat model.
func New(service driving.AskService) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Sorunuzu yazın"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		input:    ti,
		viewport: vp,
		status:   readyStatus,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // title+description, spacer, input box, status
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.thinking {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.thinking = true
			m.status = thinkingStatus
			return m, m.ask(question)
		}

	case answerMsg:
		m.thinking = false
		m.status = readyStatus
		m.turns = append(m.turns, turn{question: msg.question, answer: msg.text})
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case answerErrMsg:
		m.thinking = false
		m.status = readyStatus
		m.turns = append(m.turns, turn{
			question: msg.question,
			answer:   "Hata: " + msg.err.Error(),
			failed:   true,
		})
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, vpCmd)
}

// ask runs the answering pipeline off the event loop.
func (m Model) ask(question string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		answer, err := service.Ask(context.Background(), question)
		if err != nil {
			return answerErrMsg{question: question, err: err}
		}
		return answerMsg{question: question, text: answer.Text}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Yükleniyor..."
	}
	header := titleStyle.Render(chatTitle) + "\n" + descStyle.Render(chatDescription)
	transcript := transcriptStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

// renderTranscript formats the conversation, or the example questions
// when nothing has been asked yet.
func (m Model) renderTranscript() string {
	if len(m.turns) == 0 {
		lines := []string{"Örnek sorular:", ""}
		for _, q := range ExampleQuestions {
			lines = append(lines, "  • "+q)
		}
		return strings.Join(lines, "\n")
	}

	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s\n", questionStyle.Render("Soru: "+t.question))
		if t.failed {
			b.WriteString(errorStyle.Render(t.answer))
		} else {
			b.WriteString(t.answer)
		}
	}
	return b.String()
}
