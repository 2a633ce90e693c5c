package ui

import (
	"testing"

	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joinframe/pkg/table"
)

func joined() *table.Table {
	t := table.MustNew("orders",
		table.NewIntColumn("id", 1, 2, 3),
		table.NewStringColumn("name", "ann", "bob", "a rather long customer name that is cut"),
	)
	t.Column(1).SetMissing(1)
	return t
}

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) Browser {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	b, ok := m.(Browser)
	require.True(t, ok)
	return b
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestColumnsFor(t *testing.T) {
	tbl := joined()
	cols := columnsFor(tbl.ColumnNames(), tbl.DisplayRows(0))
	assert.Equal(t, []btable.Column{
		{Title: "id", Width: 2},
		{Title: "name", Width: maxColumnWidth},
	}, cols)
}

func TestBrowser_Navigation(t *testing.T) {
	m := NewBrowser(joined(), "3 rows x 2 columns")
	assert.Equal(t, 0, m.table.Cursor())
	assert.Equal(t, []string{"1", "ann"}, []string(m.table.SelectedRow()))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.table.Cursor())
	assert.Equal(t, []string{"2", table.MissingText}, []string(m.table.SelectedRow()))

	m = press(t, m, runes("G"))
	assert.Equal(t, 2, m.table.Cursor())
	m = press(t, m, runes("k"), runes("g"))
	assert.Equal(t, 0, m.table.Cursor())

	assert.Contains(t, m.View(), "orders")
	assert.Contains(t, m.View(), "row 1 of 3")
}

func TestBrowser_HelpAndQuit(t *testing.T) {
	m := NewBrowser(joined(), "")
	m = press(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "last row")

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	m = next.(Browser)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestBrowser_Resize(t *testing.T) {
	m := NewBrowser(joined(), "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(Browser)
	assert.Equal(t, 20-chromeHeight, m.table.Height())
	assert.Equal(t, 80, m.help.Width)
}

func TestBrowser_EmptyTable(t *testing.T) {
	m := NewBrowser(table.MustNew("empty", table.NewIntColumn("id")), "0 rows x 1 columns")
	assert.Contains(t, m.View(), "0 rows x 1 columns")
	assert.NotContains(t, m.View(), "row 1 of")
}
