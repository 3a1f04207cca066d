// Package engine implements the stack operations.
//
// Every operation starts from a fresh reference snapshot, derives the names it
// needs from the branch naming scheme and writes through git.Git. Writes that
// depend on earlier reads assert the value that was read, so concurrent
// invocations fail instead of overwriting each other:
//   - Start records a new branch's base and fork point
//   - Push publishes with a lease and then records what was published
//   - Rebase replays a branch onto its base and advances the fork point
//   - Fix pairs, garbage-collects and repairs auxiliary references
//
// The engine holds no state between calls.
package engine
