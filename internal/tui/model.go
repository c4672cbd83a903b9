package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/askbox/internal/chat"
	"github.com/diogo/askbox/internal/models"
	"github.com/diogo/askbox/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// submitDoneMsg is returned by the submit command once Submit returns
type submitDoneMsg struct {
	err error
}

// ChatSession is what the TUI needs from a chat session
type ChatSession interface {
	Submit(ctx context.Context, userText string) error
	Transcript() []models.Message
	Busy() bool
	HasCredential() bool
}

// ObservableSession is a ChatSession that can report to the program
type ObservableSession interface {
	ChatSession
	SetObserver(o chat.Observer)
}

// Options configures the chat TUI
type Options struct {
	Title    string
	Palette  string
	Markdown render.Options
	Logger   zerolog.Logger
}

// DefaultOptions returns the default TUI options
func DefaultOptions() Options {
	return Options{
		Title:    "askbox",
		Palette:  render.DefaultPalette,
		Markdown: render.DefaultOptions(),
		Logger:   zerolog.Nop(),
	}
}

// Model represents the TUI state
type Model struct {
	session ChatSession
	opts    Options

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages       []models.Message
	loading        bool
	ready          bool
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model over session
func NewChatModel(session ChatSession, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if opts.Title == "" {
		opts.Title = "askbox"
	}

	return Model{
		session:  session,
		opts:     opts,
		textarea: ta,
		spinner:  s,
		messages: session.Transcript(),
		loading:  session.Busy(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			// Enter never reaches the textarea; it only submits
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if isExitCommand(input) {
				return m, tea.Quit
			}

			m.loading = true
			m.animationFrame = 0
			return m, tea.Batch(
				m.submit(input),
				m.spinner.Tick,
				animationTick(),
			)
		}

	case messageAppendedMsg:
		m.messages = append(m.messages, msg.message)
		m.updateViewport()
		m.viewport.GotoBottom()

	case inputClearedMsg:
		m.textarea.Reset()

	case busyChangedMsg:
		m.loading = msg.busy

	case submitDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.opts.Logger.Debug().Err(msg.err).Msg("submission finished with error")
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func isExitCommand(input string) bool {
	switch input {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// submit runs the session submission off the update loop
func (m Model) submit(input string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return submitDoneMsg{err: session.Submit(context.Background(), input)}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	status := pendingStyle.Render("○ key pending")
	if m.session.HasCredential() {
		status = readyStyle.Render("● key ready")
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ "+m.opts.Title),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(models.CompletionModel),
		hintStyle.Render("  •  "),
		status,
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	messagesContent := m.viewport.View()
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Hi! I'm your AI assistant."),
		"",
		welcomeStyle.Width(width).Render("Ask me anything. Type a message below and press Enter."),
		"",
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation draws the busy indicator shown in place of the input
func (m Model) renderLoadingAnimation() string {
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}
	frame := m.animationFrame

	var bar strings.Builder
	for i := 0; i < 20; i++ {
		style := lipgloss.NewStyle().Foreground(gradientColors[(i+frame)%len(gradientColors)])
		bar.WriteString(style.Render(barChars[(i+frame/2)%len(barChars)]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dots += lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Thinking ")

	return fmt.Sprintf("%s %s %s %s", m.spinner.View(), bar.String(), text, dots)
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport redraws the transcript. Entries keep their order.
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(render.Plain(msg.Text))
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Assistant")
			rendered := render.Message(msg.Text, m.opts.Markdown.WithWidth(bubbleWidth-4))
			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI over session until the user quits
func RunChat(ctx context.Context, session ObservableSession, opts Options) error {
	ApplyPalette(render.ResolvePalette(opts.Palette))

	p := tea.NewProgram(
		NewChatModel(session, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	session.SetObserver(NewObserver(p.Send))
	defer session.SetObserver(chat.NopObserver{})

	_, err := p.Run()
	return err
}
