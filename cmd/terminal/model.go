package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/code-lens/internal/client"
	"github.com/sevigo/code-lens/internal/display"
	"github.com/sevigo/code-lens/internal/markdown"
)

const placeholderReview = "Paste code on the left and press ctrl+r for a review."

type focus int

const (
	focusEditor focus = iota
	focusReview
)

type model struct {
	styles   styles
	renderer *display.Terminal
	reviewer reviewer
	server   string
	timeout  time.Duration

	editor   textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	focus    focus

	width, height int
	isLoading     bool
	review        string
	rendered      string

	toast      string
	toastError bool
	toastID    int
}

func initialModel(theme display.ThemeName, r reviewer, server string, timeout time.Duration) *model {
	st := newStyles(theme)

	ta := textarea.New()
	ta.Placeholder = "Paste code here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = st.success

	vp := viewport.New(0, 0)

	return &model{
		styles:   st,
		renderer: display.NewTerminal(theme),
		reviewer: r,
		server:   server,
		timeout:  timeout,
		editor:   ta,
		viewport: vp,
		spinner:  sp,
		rendered: st.inactive.Render(placeholderReview),
	}
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			return m, m.startReview()
		case "tab":
			m.toggleFocus()
			return m, nil
		}
		var cmd tea.Cmd
		if m.focus == focusEditor {
			m.editor, cmd = m.editor.Update(msg)
		} else {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.isLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reviewCompleteMsg:
		m.isLoading = false
		m.setReview(msg.resp.MarkdownText)
		if msg.resp.Precheck {
			return m, m.showToast("Nothing was sent: see the message on the right.", false)
		}
		return m, m.showToast(fmt.Sprintf("Review ready in %s.", msg.resp.Duration.Round(100*time.Millisecond)), false)

	case reviewFailedMsg:
		m.isLoading = false
		if client.IsConflict(msg.err) {
			return m, m.showToast("A review for this session is already running.", true)
		}
		return m, m.showToast("Review failed: "+msg.Error(), true)

	case clearToastMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// startReview sends the editor contents. It does nothing while a review is
// already in flight.
func (m *model) startReview() tea.Cmd {
	if m.isLoading {
		return nil
	}
	m.isLoading = true
	return tea.Batch(m.spinner.Tick, reviewCmd(m.reviewer, m.editor.Value(), m.timeout))
}

func (m *model) setReview(text string) {
	m.review = text
	m.rendered = m.renderer.Render(markdown.Parse(text))
	m.viewport.SetContent(m.rendered)
	m.viewport.GotoTop()
}

func (m *model) showToast(text string, isError bool) tea.Cmd {
	m.toastID++
	m.toast = text
	m.toastError = isError
	return clearToastCmd(m.toastID)
}

func (m *model) toggleFocus() {
	if m.focus == focusEditor {
		m.focus = focusReview
		m.editor.Blur()
		return
	}
	m.focus = focusEditor
	m.editor.Focus()
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height

	paneWidth := max((width-6)/2, 10)
	paneHeight := max(height-9, 3)

	m.styles.header = m.styles.header.Width(width - 6)
	m.editor.SetWidth(paneWidth - 3)
	m.editor.SetHeight(paneHeight)
	m.viewport.Width = paneWidth - 3
	m.viewport.Height = paneHeight
	m.viewport.SetContent(m.rendered)
}

func (m *model) View() string {
	if m.width == 0 {
		return fmt.Sprintf("\n  %s STARTING CODE-LENS...\n\n", m.spinner.View())
	}

	header := m.styles.header.Render("CODE-LENS " + m.styles.inactive.Render("│ "+m.server))

	editorPane, reviewPane := m.styles.active, m.styles.pane
	if m.focus == focusReview {
		editorPane, reviewPane = m.styles.pane, m.styles.active
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		editorPane.Render(m.editor.View()),
		" ",
		reviewPane.Render(m.viewport.View()),
	)

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			body,
			m.styles.footer.Render(m.statusLine()),
		),
	)
}

func (m *model) statusLine() string {
	var parts []string
	if m.isLoading {
		parts = append(parts, m.spinner.View()+" "+m.styles.success.Render("REVIEWING..."))
	}
	switch {
	case m.toast != "" && m.toastError:
		parts = append(parts, m.styles.error.Render("⚠ "+m.toast))
	case m.toast != "":
		parts = append(parts, m.styles.toast.Render(m.toast))
	default:
		parts = append(parts, m.styles.inactive.Render("ctrl+r review │ tab switch pane │ esc quit"))
	}
	return strings.Join(parts, "  ")
}

var _ reviewer = (*client.Client)(nil)
