package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/noderefresh/internal/config"
	testutil "github.com/imamik/noderefresh/internal/testing"
)

func TestWithConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.StabilizationDelay = config.Duration(5 * time.Second)
	cfg.Defaults.MaxPodsPerBatch = 2
	cfg.Defaults.MinHealthThreshold = 60
	cfg.SystemNamespaces = []string{"platform"}

	r := NewRefreshReconciler(testutil.NewMockGateway(nil, nil, nil), WithConfig(cfg))

	assert.Equal(t, 5*time.Second, r.stabilizationDelay)
	assert.Equal(t, int32(2), r.defaultBatchSize)
	assert.Equal(t, int32(60), r.defaultMinHealth)
	assert.Len(t, r.drainOpts, 2)
}

func TestWithConfig_ProtectsConfiguredNamespaces(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.SystemNamespaces = []string{"platform"}
	cfg.EvictionInterval = 0

	h := newHarness(t, append(healthyFleet(3), oldNode("old-1", 4*day)),
		appPods("old-1", "platform/ingress", "kube-system/dns", "app/web"),
		WithConfig(cfg))
	h.prov.SucceedAll()

	result := h.r.ReconcileRefresh(testutil.TestContext(t), testutil.NewRefresh("default", "refresh").Build())

	assert.Equal(t, int32(1), result.NodesProcessed)
	assert.Equal(t, -1, h.events.IndexOf("evict:platform/ingress"))
	assert.Equal(t, -1, h.events.IndexOf("delete:platform/ingress"))
	assert.Equal(t, -1, h.events.IndexOf("evict:kube-system/dns"))
	assert.Equal(t, -1, h.events.IndexOf("delete:kube-system/dns"))
	assert.NotEqual(t, -1, h.events.IndexOf("evict:app/web"))
}
