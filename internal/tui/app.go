// internal/tui/app.go
//
// The owner chat console. It follows The Elm Architecture that
// bubbletea imposes: a model holding the screen state, an Update
// function folding messages into the model, and a View rendering it.
//
// The owner types requests to the CEO in the input line; the viewport
// above shows the company conversation and a status bar tracks the
// financial position as the simulation ticks in the background.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackrab369/Versaas-ai/internal/orchestrator"
	"github.com/blackrab369/Versaas-ai/internal/simulation"
)

const statusRefreshInterval = 2 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ownerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	agentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type statusRefreshMsg struct {
	status orchestrator.Status
	err    error
}

type requestDoneMsg struct {
	err error
}

// App is the owner console bound to one project.
type App struct {
	manager *simulation.Manager
	project string

	viewport viewport.Model
	input    textinput.Model
	status   orchestrator.Status
	lines    []string
	lastSeq  uint64
	err      error
	ready    bool
}

// NewApp builds the console for a project. The project is started on
// the manager before the program runs.
func NewApp(manager *simulation.Manager, project string) *App {
	input := textinput.New()
	input.Placeholder = "Tell the CEO what to build..."
	input.Focus()
	input.CharLimit = 500

	return &App{
		manager: manager,
		project: project,
		input:   input,
	}
}

// Run starts the project and blocks inside the bubbletea event loop.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.manager.GetOrStart(ctx, a.project); err != nil {
		return fmt.Errorf("tui: start %s: %w", a.project, err)
	}
	_, err := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.refreshCmd())
}

func (a *App) refreshCmd() tea.Cmd {
	return tea.Tick(statusRefreshInterval, func(time.Time) tea.Msg {
		status, err := a.manager.Status(a.project)
		return statusRefreshMsg{status: status, err: err}
	})
}

func (a *App) submitCmd(request string) tea.Cmd {
	return func() tea.Msg {
		orc, err := a.manager.GetOrStart(context.Background(), a.project)
		if err != nil {
			return requestDoneMsg{err: err}
		}
		return requestDoneMsg{err: orc.ProcessRequest(context.Background(), request)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 3
		a.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
		a.input.Width = msg.Width - 4
		a.ready = true
		a.viewport.SetContent(strings.Join(a.lines, "\n"))
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			request := strings.TrimSpace(a.input.Value())
			if request == "" {
				return a, nil
			}
			a.input.Reset()
			a.appendLine(ownerStyle.Render("OWNER: ") + request)
			return a, a.submitCmd(request)
		}

	case statusRefreshMsg:
		if msg.err != nil {
			a.err = msg.err
		} else {
			a.err = nil
			a.status = msg.status
			a.pullTranscript()
		}
		return a, a.refreshCmd()

	case requestDoneMsg:
		if msg.err != nil {
			a.err = msg.err
		}
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// pullTranscript appends any conversation lines produced since the
// last refresh.
func (a *App) pullTranscript() {
	orc, err := a.manager.GetOrStart(context.Background(), a.project)
	if err != nil {
		a.err = err
		return
	}
	for _, entry := range orc.Messages().Since(a.lastSeq) {
		a.lastSeq = entry.Seq
		if entry.From == "OWNER" {
			continue // already echoed on submit
		}
		a.appendLine(agentStyle.Render(entry.From+" -> "+entry.To+": ") + entry.Body)
	}
}

func (a *App) appendLine(line string) {
	a.lines = append(a.lines, line)
	if a.ready {
		a.viewport.SetContent(strings.Join(a.lines, "\n"))
		a.viewport.GotoBottom()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "loading..."
	}

	header := titleStyle.Render("Versaas | " + a.project)
	bar := statusStyle.Render(fmt.Sprintf(
		"%s | day %.2f | revenue $%.0f | runway %.0f days | %d msgs pending",
		a.status.Company.Phase,
		a.status.Company.DaysElapsed,
		a.status.Company.Revenue,
		a.status.Company.RunwayDays,
		a.status.MessagesPending,
	))
	if a.err != nil {
		bar = errStyle.Render("error: " + a.err.Error())
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, bar, a.viewport.View(), a.input.View())
}
