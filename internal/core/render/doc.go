// Package render projects domain values into display-ready view models.
//
// Every function here is pure: no I/O, no clocks, no shared state. The CLI
// and TUI adapters draw the returned views; nothing in this package knows
// about terminals beyond stripping control sequences from untrusted text.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: ports, services or any adapter
package render
