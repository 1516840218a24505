package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Stage is one tracked step of a render run.
type Stage struct {
	Key    string
	Name   string
	Status string
	Detail string
}

// ProgressModel is a bubbletea model rendering the render pipeline's
// stages as a small status table with a spinner footer.
type ProgressModel struct {
	title      string
	stages     []Stage
	stageIndex map[string]int
	spin       spinner.Model
	done       bool
	err        error
}

// NewProgressModel creates a progress model with the given title and
// pre-populated stages, all starting out pending.
func NewProgressModel(title string, stages []Stage) ProgressModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	index := make(map[string]int, len(stages))
	for i := range stages {
		if stages[i].Status == "" {
			stages[i].Status = "pending"
		}
		index[stages[i].Key] = i
	}
	return ProgressModel{
		title:      title,
		stages:     stages,
		stageIndex: index,
		spin:       spin,
	}
}

// Init satisfies the tea.Model interface.
func (m ProgressModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update satisfies the tea.Model interface.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case StageUpdateMsg:
		if idx, ok := m.stageIndex[msg.Key]; ok {
			if msg.Status != "" {
				m.stages[idx].Status = msg.Status
			}
			if msg.Detail != "" {
				m.stages[idx].Detail = msg.Detail
			}
		}
		return m, nil

	case WorkDoneMsg:
		m.done = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(m.title))
	b.WriteByte('\n')

	nameWidth := 0
	for _, st := range m.stages {
		if len(st.Name) > nameWidth {
			nameWidth = len(st.Name)
		}
	}

	for _, st := range m.stages {
		status := StatusStyle(st.Status).Render(pad(st.Status, 10))
		fmt.Fprintf(&b, "  %s  %s", pad(st.Name, nameWidth), status)
		if detail := strings.TrimSpace(st.Detail); detail != "" {
			b.WriteString("  ")
			b.WriteString(TruncateWithEllipsis(detail, 60))
		}
		b.WriteByte('\n')
	}

	if m.err != nil {
		fmt.Fprintf(&b, "\nError: %v\n", m.err)
	} else if !m.done {
		fmt.Fprintf(&b, "\n%s working...\n", m.spin.View())
	}

	return b.String()
}

// Done returns whether the model has finished (work done or error).
func (m ProgressModel) Done() bool {
	return m.done
}

// Err returns any fatal error that occurred.
func (m ProgressModel) Err() error {
	return m.err
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// TruncateWithEllipsis truncates a string and adds "..." if it exceeds
// max length.
func TruncateWithEllipsis(value string, max int) string {
	if max <= 0 {
		return ""
	}
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}
