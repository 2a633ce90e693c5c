// Package ui browses a joined table in the terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"joinframe/pkg/logging"
	"joinframe/pkg/table"
)

// chromeHeight is the number of lines around the table: title, borders,
// status and help.
const chromeHeight = 6

// Browser is a read-only scrolling view of one table.
type Browser struct {
	title   string
	summary string
	rows    int
	table   btable.Model
	help    help.Model
	keys    keyMap

	showHelp bool
	quitting bool
}

// NewBrowser builds a browser over every row of t. summary is shown in the
// status line.
func NewBrowser(t *table.Table, summary string) Browser {
	cells := t.DisplayRows(0)

	rows := make([]btable.Row, len(cells))
	for i, r := range cells {
		rows[i] = btable.Row(r)
	}

	bt := btable.New(
		btable.WithColumns(columnsFor(t.ColumnNames(), cells)),
		btable.WithRows(rows),
		btable.WithFocused(true),
		btable.WithHeight(10),
	)

	s := btable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	bt.SetStyles(s)

	return Browser{
		title:   t.Name(),
		summary: summary,
		rows:    len(rows),
		table:   bt,
		help:    help.New(),
		keys:    keys,
	}
}

// columnsFor sizes each column to its widest cell, header included.
func columnsFor(names []string, cells [][]string) []btable.Column {
	cols := make([]btable.Column, len(names))
	for c, name := range names {
		width := lipgloss.Width(name)
		for _, r := range cells {
			width = max(width, lipgloss.Width(r[c]))
		}
		cols[c] = btable.Column{Title: name, Width: min(width, maxColumnWidth)}
	}
	return cols
}

func (m Browser) Init() tea.Cmd {
	return nil
}

func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-chromeHeight, 1))
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m Browser) View() string {
	if m.quitting {
		return ""
	}
	m.help.ShowAll = m.showHelp

	status := m.summary
	if m.rows > 0 {
		status = fmt.Sprintf("row %d of %d  %s", m.table.Cursor()+1, m.rows, m.summary)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		tableStyle.Render(m.table.View()),
		statusStyle.Render(status),
		m.help.View(m.keys),
	)
}

// Browse runs a full-screen browser over t until the user quits.
func Browse(in io.Reader, out io.Writer, t *table.Table, summary string) error {
	p := tea.NewProgram(NewBrowser(t, summary),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "browse result")
	}
	logging.WithTable(t.Name()).Debug("browser closed", "rows", t.RowCount())
	return nil
}
