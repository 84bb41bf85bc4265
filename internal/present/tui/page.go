package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/mithrel/triptips/internal/page"
	"github.com/mithrel/triptips/internal/render"
)

const helpLine = "↑/↓ pgup/pgdn scroll • q quit"

// contentMsg signals that the page's mount fetch settled.
type contentMsg struct{}

// Model attaches a page to the terminal. Init is the mount; the fetch
// result arrives as a contentMsg and re-renders the viewport.
type Model struct {
	ctx    context.Context
	page   *page.Page
	r      *render.TerminalRenderer
	log    *zap.Logger
	vp     viewport.Model
	header lipglossv2.Style
	footer lipglossv2.Style
	width  int
	height int
	body   string
}

func NewModel(ctx context.Context, p *page.Page, r *render.TerminalRenderer, logger *zap.Logger, termW, termH int) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		ctx:  ctx,
		page: p,
		r:    r,
		log:  logger,
		header: lipglossv2.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipglossv2.Color("231")).
			Background(lipglossv2.Color("63")),
		footer: lipglossv2.NewStyle().Foreground(lipglossv2.Color("241")),
	}
	m.resize(termW, termH)
	return m
}

// waitForContent blocks until the page settled.
func waitForContent(p *page.Page) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return contentMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	m.page.Mount(m.ctx)
	return waitForContent(m.page)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case contentMsg:
		m.refresh()
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(x.Width, x.Height)
		return m, nil
	case tea.KeyMsg:
		switch x.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) View() string {
	return m.header.Render(m.page.Title()) + "\n" + m.vp.View() + "\n" + m.footer.Render(helpLine)
}

// Body returns the rendered markdown currently shown in the viewport.
func (m *Model) Body() string { return m.body }

func (m *Model) resize(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	m.width, m.height = termW, termH
	// header and footer take one line each
	innerH := termH - 2
	if innerH < 3 {
		innerH = 3
	}
	if m.vp.Width == 0 {
		m.vp = viewport.New(termW, innerH)
	} else {
		m.vp.Width = termW
		m.vp.Height = innerH
	}
	if err := m.r.SetWidth(termW - 2); err != nil {
		m.log.Warn("resize renderer", zap.Error(err))
	}
	m.refresh()
}

func (m *Model) refresh() {
	body, err := m.r.Render(m.page.Content())
	if err != nil {
		m.log.Error("render markdown", zap.Error(err))
		body = ""
	}
	m.body = body
	m.vp.SetContent(body)
}

// RenderPage runs the interactive viewer until the user quits.
func RenderPage(ctx context.Context, p *page.Page, r *render.TerminalRenderer, logger *zap.Logger, termW, termH int) error {
	m := NewModel(ctx, p, r, logger, termW, termH)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}
