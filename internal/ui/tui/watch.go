package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

// FetchFunc lists the requests to display.
type FetchFunc func(ctx context.Context) ([]migrationv1.NodeRefresh, error)

// RunWatchTUI runs the live status dashboard until the user quits or ctx
// is cancelled. fetch is polled every interval.
func RunWatchTUI(ctx context.Context, scope string, interval time.Duration, fetch FetchFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewWatchModel(scope)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go poll(ctx, p, interval, fetch)

	finalModel, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if fm, ok := finalModel.(Model); ok && fm.Err != nil {
		return fm.Err
	}
	return nil
}

func poll(ctx context.Context, p *tea.Program, interval time.Duration, fetch FetchFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		p.Send(fetchStatus(ctx, fetch))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func fetchStatus(ctx context.Context, fetch FetchFunc) StatusMsg {
	items, err := fetch(ctx)
	if err != nil {
		return StatusMsg{FetchErr: err.Error()}
	}
	return StatusMsg{Items: items}
}
