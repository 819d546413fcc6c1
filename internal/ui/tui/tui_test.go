package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
)

var viewNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func refresh(ns, name string, phase migrationv1.RefreshPhase, msg string) migrationv1.NodeRefresh {
	return migrationv1.NodeRefresh{
		ObjectMeta: metav1.ObjectMeta{Namespace: ns, Name: name},
		Status:     migrationv1.NodeRefreshStatus{Phase: phase, Message: msg},
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
		{50 * time.Hour, "2d2h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d), "formatDuration(%v)", tt.d)
	}
}

func TestRenderTable_Plain(t *testing.T) {
	t.Parallel()

	done := refresh("default", "workers", migrationv1.RefreshPhaseComplete, "Processed 2 nodes")
	done.Status.NodesProcessed = ptr.To[int32](2)
	done.Status.LastMigration = &metav1.Time{Time: viewNow.Add(-90 * time.Second)}
	waiting := refresh("ops", "gpu", migrationv1.RefreshPhaseWaiting, "Cluster health below 80%")
	waiting.Spec.Paused = true

	out := RenderTable([]migrationv1.NodeRefresh{done, waiting}, viewNow, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], "NAMESPACE"))
	assert.NotContains(t, out, "\x1b[", "plain output must not carry escape sequences")

	assert.Contains(t, lines[1], "workers")
	assert.Contains(t, lines[1], "Complete")
	assert.Contains(t, lines[1], "1m30s ago")
	assert.True(t, strings.HasSuffix(lines[1], "Processed 2 nodes"))

	assert.Contains(t, lines[2], "Waiting (paused)")
	assert.Contains(t, lines[2], "-")

	// Columns line up.
	assert.Equal(t, strings.Index(lines[0], "PHASE"), strings.Index(lines[1], "Complete"))
	assert.Equal(t, strings.Index(lines[0], "PHASE"), strings.Index(lines[2], "Waiting"))
}

func TestRenderTable_NoStatusYet(t *testing.T) {
	t.Parallel()

	out := RenderTable([]migrationv1.NodeRefresh{refresh("default", "fresh", "", "")}, viewNow, false)
	assert.Contains(t, out, "Pending")
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	out := RenderTable(nil, viewNow, false)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestPhaseIcon(t *testing.T) {
	t.Parallel()
	tests := []struct {
		phase migrationv1.RefreshPhase
		want  string
	}{
		{migrationv1.RefreshPhaseComplete, checkMark},
		{migrationv1.RefreshPhaseMonitoring, checkMark},
		{migrationv1.RefreshPhaseFailed, crossMark},
		{migrationv1.RefreshPhaseWaiting, warnMark},
		{migrationv1.RefreshPhaseMigrating, pendMark},
		{"", pendMark},
	}
	for _, tt := range tests {
		icon, _ := phaseIcon(tt.phase)
		assert.Equal(t, tt.want, icon, "phaseIcon(%q)", tt.phase)
	}
}

func TestCurrentSpinner(t *testing.T) {
	t.Parallel()

	assert.Equal(t, spinnerFrames[0], currentSpinner(0))
	assert.Equal(t, spinnerFrames[1], currentSpinner(len(spinnerFrames)+1))
	assert.Equal(t, spinnerFrames[3], currentSpinner(-3))
}

func TestModelUpdateStatus(t *testing.T) {
	t.Parallel()

	m := NewWatchModel("all namespaces")
	m.Now = func() time.Time { return viewNow }

	items := []migrationv1.NodeRefresh{refresh("default", "a", migrationv1.RefreshPhaseMigrating, "Processing node n1")}
	updated, _ := m.Update(StatusMsg{Items: items})
	m = updated.(Model)
	assert.Len(t, m.Items, 1)
	assert.Equal(t, viewNow, m.LastUpdate)
	assert.Empty(t, m.FetchErr)

	updated, _ = m.Update(StatusMsg{FetchErr: "connection refused"})
	m = updated.(Model)
	assert.Len(t, m.Items, 1, "last good list is kept")
	assert.Equal(t, "connection refused", m.FetchErr)
}

func TestModelUpdateKeys(t *testing.T) {
	t.Parallel()

	m := NewWatchModel("ns/default")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
}

func TestModelUpdateTickAndError(t *testing.T) {
	t.Parallel()

	m := NewWatchModel("ns/default")
	updated, cmd := m.Update(TickMsg{})
	assert.Equal(t, 1, updated.(Model).SpinnerFrame)
	assert.NotNil(t, cmd)

	boom := errors.New("boom")
	updated, cmd = m.Update(ErrMsg{Err: boom})
	assert.Equal(t, boom, updated.(Model).Err)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, updated.(Model).Width)
}

func TestRenderView(t *testing.T) {
	t.Parallel()

	m := NewWatchModel("all namespaces")
	m.Now = func() time.Time { return viewNow }
	m.StartTime = viewNow.Add(-time.Minute)

	out := m.View()
	assert.Contains(t, out, "noderefresh: all namespaces")
	assert.Contains(t, out, "loading")
	assert.Contains(t, out, "No NodeRefresh resources found")
	assert.Contains(t, out, "watching 1m0s")
	assert.Contains(t, out, "q: quit")

	m.Items = []migrationv1.NodeRefresh{
		refresh("default", "a", migrationv1.RefreshPhaseMigrating, "Processing node n1"),
		refresh("default", "b", migrationv1.RefreshPhaseFailed, "boom"),
	}
	m.LastUpdate = viewNow.Add(-5 * time.Second)
	m.FetchErr = "connection refused"

	out = m.View()
	assert.Contains(t, out, "2 requests: 1 migrating, 0 waiting, 1 failed")
	assert.Contains(t, out, "Processing node n1")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "updated 5s ago")
}
