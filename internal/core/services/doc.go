// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every service owns its state behind a mutex and is safe for concurrent
// use. Operations that reach the network are gated so that at most one
// is outstanding per service instance.
package services
