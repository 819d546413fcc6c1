package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

// Model is the Bubble Tea model for `noderefresh status --watch`.
type Model struct {
	// Scope is shown in the header, e.g. "all namespaces" or "ns/default".
	Scope string

	Items        []migrationv1.NodeRefresh
	LastUpdate   time.Time
	FetchErr     string
	StartTime    time.Time
	Now          func() time.Time
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
}

// NewWatchModel creates a model for the watch dashboard.
func NewWatchModel(scope string) Model {
	return Model{
		Scope:     scope,
		StartTime: time.Now(),
		Now:       time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StatusMsg:
		// A failed fetch keeps the last good table on screen.
		m.FetchErr = msg.FetchErr
		if msg.FetchErr == "" {
			m.Items = msg.Items
			m.LastUpdate = m.now()
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}

func (m Model) summary() string {
	counts := map[migrationv1.RefreshPhase]int{}
	for i := range m.Items {
		counts[m.Items[i].Status.Phase]++
	}
	return fmt.Sprintf("%d requests: %d migrating, %d waiting, %d failed",
		len(m.Items),
		counts[migrationv1.RefreshPhaseMigrating],
		counts[migrationv1.RefreshPhaseWaiting],
		counts[migrationv1.RefreshPhaseFailed],
	)
}
