// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a stacker command (start, push, fix, etc.)
// and turns the engine's results into user-facing output.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Engine, Splog, and other dependencies
//   - Actions are stateless - all state lives in the repository's references
//   - Engine errors are returned unchanged so the CLI can report them verbatim
package actions
