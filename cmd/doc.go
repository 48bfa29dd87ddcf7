// Package cmd implements the command-line interface for the mapbench
// concurrent map micro-benchmark. It provides a hierarchical command
// structure for executing runs, sweeping across map models, and
// aggregating results.
//
// The package is organized into several subpackages:
//
//   - bench: Commands for executing runs and sweeps and aggregating samples
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See mapbench -help for a list of all commands.
package cmd
