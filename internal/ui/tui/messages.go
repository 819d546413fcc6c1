// Package tui renders NodeRefresh status for the terminal, either as a
// one-shot table or as a live Bubble Tea dashboard.
package tui

import migrationv1 "github.com/imamik/noderefresh/api/v1"

// StatusMsg carries the latest list of requests.
type StatusMsg struct {
	Items    []migrationv1.NodeRefresh
	FetchErr string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }
