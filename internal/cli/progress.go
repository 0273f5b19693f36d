package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
)

// Messages
type (
	progressMsg      pdb.Progress
	tableDoneMsg     tableDone
	buildFinishedMsg struct{ err error }
	tickMsg          time.Time
)

const barWidth = 30

// buildModel is the bubbletea model behind build --tui.
type buildModel struct {
	names   []string
	started time.Time
	now     time.Time

	current     *pdb.Progress
	done        []tableDone
	err         error
	finished    bool
	interrupted bool
}

func newBuildModel(names []string) *buildModel {
	now := time.Now()
	return &buildModel{names: names, started: now, now: now}
}

func (m *buildModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *buildModel) tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.interrupted = true
			return m, tea.Quit
		}

	case tickMsg:
		m.now = time.Time(msg)
		return m, m.tickCmd()

	case progressMsg:
		p := pdb.Progress(msg)
		m.current = &p

	case tableDoneMsg:
		m.done = append(m.done, tableDone(msg))
		m.current = nil

	case buildFinishedMsg:
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *buildModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Building pattern databases"))
	sb.WriteString("\n\n")

	for i, name := range m.names {
		switch {
		case i < len(m.done):
			sb.WriteString(doneStyle.Render("  ✓ " + m.done[i].String()))
		case i == len(m.done) && m.err != nil:
			sb.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", name, m.err)))
		case i == len(m.done) && !m.finished:
			sb.WriteString("  ▸ " + name)
			if p := m.current; p != nil && p.Projection == name {
				sb.WriteString("\n    " + progressLine(*p))
			}
		default:
			sb.WriteString(labelStyle.Render("    " + name))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("elapsed " + m.now.Sub(m.started).Round(time.Second).String()))
	sb.WriteString("\n")
	if !m.finished {
		sb.WriteString(helpStyle.Render("q: quit"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// progressLine shows the coordinates reached so far as a bar.
func progressLine(p pdb.Progress) string {
	frac := 0.0
	if p.Size > 0 {
		frac = float64(p.Visited) / float64(p.Size)
	}
	filled := int(frac * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("depth %2d %s %5.1f%%  %s/%s  (%s)",
		p.Depth, moveStyle.Render(bar), frac*100,
		humanize.Comma(int64(p.Visited)), humanize.Comma(int64(p.Size)), p.Mode)
}
