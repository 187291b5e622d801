// Package output renders user-facing run diagnostics.
//
// Per-row messages are styled with lipgloss through a renderer bound to the
// destination writer, so color is only emitted for terminals. The end of run
// summary is a pterm table. Logging is separate and goes through pkg/logging.
package output
