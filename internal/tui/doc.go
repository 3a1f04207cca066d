// Package tui provides the terminal user interface for stacker.
//
// It handles:
//   - Structured output and the rotating debug log (Splog)
//   - Spinners around network operations (using bubbletea)
//   - Prompts for missing arguments (using survey)
//   - Rendering branch status (using lipgloss)
package tui
