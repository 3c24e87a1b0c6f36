// Package ui provides the color themes of the bigcheck CLI: raw ANSI codes
// for inline coloring of report lines and lipgloss styles for the summary
// banner. Colors are disabled by --no-color or the NO_COLOR environment
// variable.
package ui
