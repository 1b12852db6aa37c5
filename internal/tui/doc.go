// Package tui implements the interactive terminal interface for a
// panel session: an expert roster with selection, a newest-first
// result log with pending markers, and an instruction input box.
//
// It is built on bubbletea. Engine events arrive as PanelEventMsg,
// forwarded by the command layer via program.Send.
package tui
