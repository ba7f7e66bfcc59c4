// This file implements the interactive copilot chat using bubbletea.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"esgcopilot/cmd/esgcopilot/ui"
	"esgcopilot/internal/copilot"
	"esgcopilot/internal/logging"
	"esgcopilot/internal/prompt"
	"esgcopilot/internal/store"
	"esgcopilot/internal/types"
)

// chatModel is the main model for the interactive copilot chat.
type chatModel struct {
	// UI Components
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	// State
	page      string
	focused   *types.Question
	isLoading bool
	width     int
	height    int
	ready     bool

	// Backend
	app      *app
	inflight *copilot.Inflight
}

// Messages for tea updates
type (
	responseMsg string
	noticeMsg   string
)

// runInteractiveChat wires the backend and hands the terminal to bubbletea.
func runInteractiveChat() error {
	a, err := newApp(context.Background())
	if err != nil {
		return err
	}
	p := tea.NewProgram(initChat(a), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// initChat initializes the interactive chat model.
func initChat(a *app) chatModel {
	styles := ui.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask about ESG reporting... (Enter to send, /help for commands)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput
	ti.ShowSuggestions = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(80),
		)
	}

	return chatModel{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		styles:    styles,
		renderer:  renderer,
		page:      "Dashboard",
		app:       a,
		inflight:  a.inflight,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if !m.isLoading {
				return m.handleSubmit()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 6
		m.textinput.Width = msg.Width - 4
		if m.renderer != nil {
			wrap := msg.Width - 4
			if wrap > 100 {
				wrap = 100
			}
			if m.styles.Theme.IsDark {
				m.renderer, _ = glamour.NewTermRenderer(
					glamour.WithAutoStyle(),
					glamour.WithWordWrap(wrap),
				)
			} else {
				m.renderer, _ = glamour.NewTermRenderer(
					glamour.WithStylePath("light"),
					glamour.WithWordWrap(wrap),
				)
			}
		}
		m.ready = true
		m.refreshViewport()

	case responseMsg:
		m.isLoading = false
		m.inflight.End(copilot.KindChat, "chat")
		m.app.log.AppendModelMessage(string(msg))
		m.refreshViewport()
		m.viewport.GotoBottom()

	case noticeMsg:
		m.isLoading = false
		m.app.log.AppendModelMessage(string(msg))
		m.refreshViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
	}

	m.textinput, tiCmd = m.textinput.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// handleSubmit dispatches the input line: slash commands run locally, plain
// text becomes a chat request.
func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return m, nil
	}
	m.textinput.Reset()

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	if !m.inflight.Begin(copilot.KindChat, "chat") {
		return m, nil
	}

	m.app.log.AppendUserMessage(input)
	m.isLoading = true
	m.refreshViewport()
	m.viewport.GotoBottom()

	chatCtx := prompt.BuildChatContext(m.page, m.focused)
	logging.Chat("user message page=%s focused=%t", m.page, m.focused != nil)

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			reply := m.app.copilot.ChatResponse(context.Background(), input, chatCtx)
			return responseMsg(reply)
		},
	)
}

// handleCommand executes a slash command against the live store.
func (m chatModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return m, tea.Quit

	case "/help":
		return m.notice(chatHelpText)

	case "/page":
		if len(args) == 0 {
			return m.notice(fmt.Sprintf("Current page: **%s**", m.page))
		}
		m.page = strings.Join(args, " ")
		return m.notice(fmt.Sprintf("Switched to **%s**.", m.page))

	case "/focus":
		if len(args) == 0 {
			m.focused = nil
			m.textinput.SetSuggestions(nil)
			return m.notice("Cleared the focused question.")
		}
		q, ok := m.app.store.Question(args[0])
		if !ok {
			return m.notice(fmt.Sprintf("Unknown question `%s`.", args[0]))
		}
		m.focused = &q
		m.page = "Assessment"
		// Pre-filled shortcuts for the focused question; Tab accepts one.
		m.textinput.SetSuggestions([]string{
			fmt.Sprintf("How do I estimate %s?", q.Topic),
			fmt.Sprintf("Draft a report section about %s.", q.Topic),
		})
		// The contextual hint appears once per question, ever.
		m.app.log.EnsureContextualHint(q)
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case "/status":
		p := m.app.store.Progress()
		var b strings.Builder
		fmt.Fprintf(&b, "**Assessment progress: %d%%** (%d of %d answered)\n\n", p.Percent(), p.Done, p.Total)
		for _, cat := range types.Categories() {
			cp := p.ByCategory[cat]
			fmt.Fprintf(&b, "- %s: %d/%d\n", cat, cp.Done, cp.Total)
		}
		return m.notice(b.String())

	case "/suggest":
		return m.handleSuggest()

	case "/plan":
		return m.handlePlan()

	default:
		return m.notice(fmt.Sprintf("Unknown command `%s`. Try /help.", cmd))
	}
}

// handleSuggest requests an AI value suggestion for the focused question.
func (m chatModel) handleSuggest() (tea.Model, tea.Cmd) {
	if m.focused == nil {
		return m.notice("Focus a question first with `/focus <id>`.")
	}
	q := *m.focused
	if !m.inflight.Begin(copilot.KindSuggestion, q.ID) {
		return m, nil
	}

	m.isLoading = true
	app := m.app
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			defer m.inflight.End(copilot.KindSuggestion, q.ID)
			suggestion := app.copilot.SuggestValue(context.Background(), q, app.store.Company())
			if suggestion == "" {
				return noticeMsg(fmt.Sprintf("I couldn't produce a suggestion for **%s** right now.", q.ID))
			}
			app.store.UpsertQuestion(q.ID, store.QuestionUpdate{AISuggestion: &suggestion})
			return noticeMsg(fmt.Sprintf("Suggested value for **%s**: `%s`\n\nApply it with `esgcopilot assess set %s \"%s\"`.", q.ID, suggestion, q.ID, suggestion))
		},
	)
}

// handlePlan generates an action plan for the unfinished topics and appends
// it to the board.
func (m chatModel) handlePlan() (tea.Model, tea.Cmd) {
	if !m.inflight.Begin(copilot.KindPlan, "plan") {
		return m, nil
	}

	m.isLoading = true
	app := m.app
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			defer m.inflight.End(copilot.KindPlan, "plan")
			topics := prompt.BuildUnfinishedTopics(app.store.Questions())
			generated := app.copilot.GenerateActionPlan(context.Background(), app.store.Company(), topics)
			if len(generated) == 0 {
				return noticeMsg("I couldn't generate a usable plan right now. Please try again.")
			}
			app.store.ReplaceActions(append(app.store.Actions(), generated...))

			var b strings.Builder
			fmt.Fprintf(&b, "I've added **%d actions** to your board:\n\n", len(generated))
			for _, item := range generated {
				fmt.Fprintf(&b, "- %s _(impact: %s, effort: %s)_\n", item.Title, item.Impact, item.Effort)
			}
			return noticeMsg(b.String())
		},
	)
}

// notice appends a local model-side message without a network round trip.
func (m chatModel) notice(text string) (tea.Model, tea.Cmd) {
	m.app.log.AppendModelMessage(text)
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// refreshViewport re-renders the conversation into the viewport.
func (m *chatModel) refreshViewport() {
	var b strings.Builder
	for _, msg := range m.app.log.Messages() {
		switch msg.Role {
		case types.RoleUser:
			b.WriteString(m.styles.Prompt.Render("You"))
			b.WriteString("\n")
			b.WriteString(m.styles.UserInput.Render(msg.Text))
		default:
			b.WriteString(m.styles.Bold.Render("Copilot"))
			b.WriteString("\n")
			b.WriteString(m.renderMarkdown(msg.Text))
		}
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
}

func (m *chatModel) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (m chatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.styles.Header.Width(m.width).Render(m.headerLine())

	status := ""
	if m.isLoading {
		status = m.spinner.View() + " thinking..."
	}

	footer := m.styles.Footer.Render("Enter: send │ /help: commands │ Ctrl+C: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.styles.RenderDivider(m.width),
		status,
		m.textinput.View(),
		footer,
	)
}

func (m chatModel) headerLine() string {
	line := fmt.Sprintf("ESG Copilot — %s", m.page)
	if m.focused != nil {
		line += fmt.Sprintf(" — %s", m.focused.ID)
	}
	if !m.app.copilot.Configured() {
		line += " — offline mode"
	}
	return line
}

const chatHelpText = `**Commands**

- ` + "`/focus <id>`" + ` — focus an assessment question (shows a contextual hint)
- ` + "`/focus`" + ` — clear the focused question
- ` + "`/page <name>`" + ` — set the current page context
- ` + "`/status`" + ` — assessment progress per pillar
- ` + "`/suggest`" + ` — suggest a value for the focused question
- ` + "`/plan`" + ` — generate action plan items for remaining gaps
- ` + "`/quit`" + ` — exit

Anything else is sent to the copilot as a question.`
