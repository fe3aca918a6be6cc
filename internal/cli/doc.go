// Package cli wires the mentor command tree: the bare example run, review,
// config, models and version. Run returns the process exit code.
package cli
