// Package ui renders a live terminal monitor for a running research task.
// It consumes the controller's event stream; task control stays with the
// controller, the monitor only sends lifecycle requests on keypresses.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avwhitaker/scout/internal/research"
)

const maxVisibleLines = 10

// EventMsg wraps one controller event for the update loop.
type EventMsg research.Event

// controlDone reports the outcome of a pause/resume/stop request.
type controlDone struct{ err error }

type line struct {
	text  string
	isErr bool
}

// Monitor is the root Bubble Tea model.
type Monitor struct {
	controller *research.Controller

	spinner  spinner.Model
	state    string
	query    string
	progress research.Progress
	lines    []line
	ctlErr   error
	width    int
}

// NewMonitor creates a monitor over the controller's current task.
func NewMonitor(c *research.Controller) Monitor {
	s := spinner.New()
	s.Spinner = spinner.Dot
	st := c.Status()
	return Monitor{
		controller: c,
		spinner:    s,
		state:      st.State,
		query:      st.Query,
		progress:   st.Progress,
	}
}

// Init starts the spinner and the event listener.
func (m Monitor) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitEvent())
}

func (m Monitor) waitEvent() tea.Cmd {
	ch := m.controller.Events()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg(ev)
	}
}

// Update handles messages and returns the updated model.
func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case EventMsg:
		m.apply(research.Event(msg))
		return m, m.waitEvent()

	case controlDone:
		m.ctlErr = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Monitor) apply(ev research.Event) {
	m.progress = ev.Progress
	switch ev.Type {
	case research.EventStateChanged:
		m.state = ev.State.String()
	case research.EventResultAdded:
		m.push(line{text: fmt.Sprintf("%.2f  %s", ev.Relevance, ev.Title)})
	case research.EventFetchFailed:
		m.push(line{text: fmt.Sprintf("skip  %s (%s)", ev.URL, ev.Err), isErr: true})
	}
}

func (m *Monitor) push(l line) {
	m.lines = append(m.lines, l)
	if len(m.lines) > maxVisibleLines {
		m.lines = m.lines[len(m.lines)-maxVisibleLines:]
	}
}

func (m Monitor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		return m, m.control(m.controller.Pause)
	case "r":
		return m, m.control(m.controller.Resume)
	case "s":
		return m, m.control(m.controller.Stop)
	}
	return m, nil
}

func (m Monitor) control(f func() error) tea.Cmd {
	return func() tea.Msg { return controlDone{err: f()} }
}

// View renders the monitor.
func (m Monitor) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("scout: "+m.query) + "\n\n")

	badge := StateBadge.Render(m.state)
	if m.state == research.Completed.String() || m.state == research.Stopped.String() {
		badge = DoneBadge.Render(m.state)
	} else if m.state == research.Running.String() {
		badge = m.spinner.View() + " " + StateBadge.Render(m.state)
	}
	b.WriteString(badge + "\n\n")

	b.WriteString(CounterLabel.Render(fmt.Sprintf(
		"queried %d  fetched %d  analyzed %d  errored %d",
		m.progress.Queried, m.progress.Fetched, m.progress.Analyzed, m.progress.Errored,
	)) + "\n\n")

	for _, l := range m.lines {
		if l.isErr {
			b.WriteString(ErrorLine.Render(l.text) + "\n")
		} else {
			b.WriteString(ResultLine.Render(l.text) + "\n")
		}
	}

	if m.ctlErr != nil {
		b.WriteString("\n" + ErrorLine.Render(m.ctlErr.Error()) + "\n")
	}

	b.WriteString("\n" + StatusBar.Render(
		StatusBarKey.Render("p")+" pause  "+
			StatusBarKey.Render("r")+" resume  "+
			StatusBarKey.Render("s")+" stop  "+
			StatusBarKey.Render("q")+" quit",
	) + "\n")
	return b.String()
}

// Run starts the monitor program and blocks until it exits.
func Run(c *research.Controller) error {
	_, err := tea.NewProgram(NewMonitor(c)).Run()
	return err
}
