// Package msg defines the message types used by the TUI's Bubbletea event
// loop, and the command factories that produce them.
//
// Message types are exported so the App can inject them into a running
// program with Program.Send, for example when a palette file changes on
// disk.
package msg
