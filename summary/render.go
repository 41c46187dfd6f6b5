package summary

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Render draws t as a bordered text table for the terminal. Invalid cells are
// drawn as missing.
func Render(t Table, missing string) string {
	records := t.Records(missing)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(records[0]...).
		Rows(records[1:]...)

	return tbl.String()
}
