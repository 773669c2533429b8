// Package cli defines the Cobra command tree for the backfill CLI. Each file
// in this package registers one top-level command (plan, lint, config, etc.)
// with the root command. Command implementations delegate to the engine
// packages for business logic and only handle flag parsing, I/O formatting,
// and user interaction.
package cli
