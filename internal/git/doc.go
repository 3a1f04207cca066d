// Package git provides low-level Git operations for stacker.
//
// It defines the reference model stacker reasons about and the capability
// interface the stack operations call through:
//   - Naming scheme for the refs/stacker/{base,start,remote}/<branch> namespace
//   - Snapshots of all references, read once per step
//   - Compare-and-swap reference writes, leased pushes and rebases
//
// Repo is the production implementation. It reads through go-git and runs
// the git binary for every write, so this package is the only place where
// git commands are executed.
package git
