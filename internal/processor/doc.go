// Package processor contains the non-interactive translation logic and the
// entry points of the interactive front ends. It builds the configured
// translator, translates arguments, files or standard input for the
// translate command, and starts the GUI or TUI with a session.
package processor
