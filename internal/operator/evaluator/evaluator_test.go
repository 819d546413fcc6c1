package evaluator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func nodeAged(name string, age time.Duration, ready bool) corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			CreationTimestamp: metav1.NewTime(now.Add(-age)),
		},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeMemoryPressure, Status: corev1.ConditionFalse},
				{Type: corev1.NodeReady, Status: status},
			},
		},
	}
}

func TestResolveThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want time.Duration
	}{
		{"5min", 5 * time.Minute},
		{"1hr", time.Hour},
		{"1day", 24 * time.Hour},
		{"2day", 48 * time.Hour},
		{"3day", 72 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveThreshold(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveThreshold_Unknown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "4day", "1h", "5MIN"} {
		_, err := ResolveThreshold(name)
		require.Error(t, err, name)

		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "newDepthThreshold", cfgErr.Field)
		assert.Contains(t, err.Error(), "5min, 1hr, 1day, 2day, 3day")
	}
}

func TestThresholdNames_Ordered(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"5min", "1hr", "1day", "2day", "3day"}, ThresholdNames())
}

func TestNodeAge(t *testing.T) {
	t.Parallel()
	n := nodeAged("n1", 90*time.Minute, true)

	age, err := NodeAge(&n, now)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, age)
}

func TestNodeAge_NonUTCTimestamp(t *testing.T) {
	t.Parallel()
	tz := time.FixedZone("UTC+5", 5*60*60)
	n := corev1.Node{ObjectMeta: metav1.ObjectMeta{
		Name:              "n1",
		CreationTimestamp: metav1.NewTime(now.Add(-time.Hour).In(tz)),
	}}

	age, err := NodeAge(&n, now)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, age)
}

func TestNodeAge_MissingTimestamp(t *testing.T) {
	t.Parallel()
	n := corev1.Node{ObjectMeta: metav1.ObjectMeta{Name: "n1"}}

	_, err := NodeAge(&n, now)
	require.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.Contains(t, err.Error(), "node n1")

	_, err = ShouldMigrate(&n, time.Minute, now)
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestShouldMigrate(t *testing.T) {
	t.Parallel()
	threshold := 72 * time.Hour

	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"younger", 24 * time.Hour, false},
		{"just under", threshold - time.Second, false},
		{"exactly at threshold", threshold, true},
		{"older", 96 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := nodeAged("n", tt.age, true)
			got, err := ShouldMigrate(&n, threshold, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNodeReady(t *testing.T) {
	t.Parallel()

	ready := nodeAged("a", time.Hour, true)
	notReady := nodeAged("b", time.Hour, false)
	noConditions := corev1.Node{}
	unknown := corev1.Node{Status: corev1.NodeStatus{Conditions: []corev1.NodeCondition{
		{Type: corev1.NodeReady, Status: corev1.ConditionUnknown},
	}}}

	assert.True(t, IsNodeReady(&ready))
	assert.False(t, IsNodeReady(&notReady))
	assert.False(t, IsNodeReady(&noConditions))
	assert.False(t, IsNodeReady(&unknown))
}

func TestClusterHealthPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ready int
		total int
		want  float64
	}{
		{"empty cluster is unhealthy", 0, 0, 0},
		{"all ready", 4, 4, 100},
		{"none ready", 0, 3, 0},
		{"three of four", 3, 4, 75},
		{"nineteen of twenty", 19, 20, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var nodes []corev1.Node
			for i := 0; i < tt.total; i++ {
				nodes = append(nodes, nodeAged("n", time.Hour, i < tt.ready))
			}
			assert.InDelta(t, tt.want, ClusterHealthPercent(nodes), 0.001)
		})
	}
}

func TestHealthGate(t *testing.T) {
	t.Parallel()
	nodes := []corev1.Node{
		nodeAged("a", time.Hour, true),
		nodeAged("b", time.Hour, true),
		nodeAged("c", time.Hour, true),
		nodeAged("d", time.Hour, true),
		nodeAged("e", time.Hour, false),
	}

	pct, ok := HealthGate(nodes, 80)
	assert.InDelta(t, 80.0, pct, 0.001)
	assert.True(t, ok, "health equal to the threshold passes")

	_, ok = HealthGate(nodes, 81)
	assert.False(t, ok)

	_, ok = HealthGate(nil, 0)
	assert.True(t, ok, "a zero threshold admits even an empty cluster")
}

func TestSelectAged(t *testing.T) {
	t.Parallel()
	nodes := []corev1.Node{
		nodeAged("old-b", 96*time.Hour, true),
		nodeAged("young", 24*time.Hour, true),
		{ObjectMeta: metav1.ObjectMeta{Name: "no-timestamp"}},
		nodeAged("old-a", 100*time.Hour, true),
	}

	aged, invalid := SelectAged(nodes, 72*time.Hour, now)

	var names []string
	for _, n := range aged {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"old-b", "old-a"}, names, "listing order is kept")
	assert.Equal(t, []string{"no-timestamp"}, invalid)
}
