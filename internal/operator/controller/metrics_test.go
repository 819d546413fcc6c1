package controller

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/operator/drain"
	"github.com/imamik/noderefresh/internal/operator/gateway"
)

func TestRecordPassMetric(t *testing.T) {
	passesTotal.Reset()

	recordPassMetric(migrationv1.RefreshPhaseComplete, 1.5)
	recordPassMetric(migrationv1.RefreshPhaseComplete, 0.5)
	recordPassMetric(migrationv1.RefreshPhaseWaiting, 0.1)

	counter, err := passesTotal.GetMetricWithLabelValues("Complete")
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(counter))

	waiting, err := passesTotal.GetMetricWithLabelValues("Waiting")
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(waiting))
}

func TestRecordPodResults(t *testing.T) {
	podsEvictedTotal.Reset()

	recordPodResults(podsEvictedTotal, 3, []drain.PodFailure{
		{Kind: gateway.KindBudgetExceeded},
		{Kind: gateway.KindBudgetExceeded},
		{Kind: gateway.KindNotFound},
	})

	assert.Equal(t, float64(3), testutil.ToFloat64(podsEvictedTotal.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(podsEvictedTotal.WithLabelValues("BudgetExceeded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(podsEvictedTotal.WithLabelValues("NotFound")))
}

func TestRecordHCloudAPICall(t *testing.T) {
	hcloudAPICallsTotal.Reset()

	RecordHCloudAPICall("create_server", "success")
	RecordHCloudAPICall("create_server", "error")
	RecordHCloudAPICall("create_server", "success")

	assert.Equal(t, float64(2), testutil.ToFloat64(hcloudAPICallsTotal.WithLabelValues("create_server", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(hcloudAPICallsTotal.WithLabelValues("create_server", "error")))
}

func TestReconciler_RecordsMetricsWhenEnabled(t *testing.T) {
	passesTotal.Reset()
	provisionTotal.Reset()
	podsEvictedTotal.Reset()
	podsDeletedTotal.Reset()
	before := testutil.ToFloat64(nodesRefreshedTotal)

	nodes := append(healthyFleet(3), oldNode("old-1", 4*day))
	h := newHarness(t, nodes, appPods("old-1", "app/a", "app/b"), WithMetrics(true), WithDefaults(1, 80))
	h.prov.SucceedAll()

	result := h.r.ReconcileRefresh(context.Background(), newRefreshForMetrics())
	require.Equal(t, int32(1), result.NodesProcessed)

	assert.Equal(t, float64(1), testutil.ToFloat64(passesTotal.WithLabelValues("Complete")))
	assert.Equal(t, float64(1), testutil.ToFloat64(provisionTotal.WithLabelValues("mock", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(podsEvictedTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(podsDeletedTotal.WithLabelValues("success")))
	assert.Equal(t, before+1, testutil.ToFloat64(nodesRefreshedTotal))
	assert.Equal(t, float64(100), testutil.ToFloat64(clusterHealthPercent))
}

func TestReconciler_SkipsMetricsWhenDisabled(t *testing.T) {
	passesTotal.Reset()

	h := newHarness(t, []corev1.Node{oldNode("old-1", 0)}, nil)
	h.r.ReconcileRefresh(context.Background(), newRefreshForMetrics())

	assert.Zero(t, testutil.CollectAndCount(passesTotal))
}

func newRefreshForMetrics() *migrationv1.NodeRefresh {
	return &migrationv1.NodeRefresh{
		ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "metrics"},
		Spec: migrationv1.NodeRefreshSpec{
			TargetNodeLabels:  map[string]string{"pool": "old"},
			NewDepthThreshold: "3day",
		},
	}
}
