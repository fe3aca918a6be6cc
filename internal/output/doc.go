// Package output formats generated feedback for display or machine consumption.
//
// Three formats are supported:
//   - markdown: terminal-rendered Markdown via glamour (default)
//   - text: the model's reply exactly as returned
//   - json: a structured envelope carrying the reply and run metadata
//
// Use [GetFormatter] to obtain a [Formatter] for a format name, then pass the
// result to [WriteTo], which writes to a file or stdout.
package output
