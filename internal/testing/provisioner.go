package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/noderefresh/internal/operator/provisioning"
)

// MockProvisioner is a testify mock implementing provisioning.Provisioner.
// Every call is also written to Log as "provision:<node>".
type MockProvisioner struct {
	mock.Mock
	Log *EventLog
}

var _ provisioning.Provisioner = (*MockProvisioner)(nil)

// NewMockProvisioner creates a MockProvisioner with no expectations.
func NewMockProvisioner(log *EventLog) *MockProvisioner {
	return &MockProvisioner{Log: log}
}

// Name implements provisioning.Provisioner.
func (m *MockProvisioner) Name() string {
	return "mock"
}

// Provision implements provisioning.Provisioner.
func (m *MockProvisioner) Provision(ctx context.Context, hint provisioning.Hint) error {
	m.Log.Add("provision:%s", hint.Node)
	args := m.Called(ctx, hint)
	return args.Error(0)
}

// FailFor makes provisioning fail for the named nodes. Call before SucceedAll.
func (m *MockProvisioner) FailFor(err error, nodes ...string) *MockProvisioner {
	for _, node := range nodes {
		m.On("Provision", mock.Anything, mock.MatchedBy(func(h provisioning.Hint) bool {
			return h.Node == node
		})).Return(err)
	}
	return m
}

// SucceedAll makes every otherwise unmatched call succeed.
func (m *MockProvisioner) SucceedAll() *MockProvisioner {
	m.On("Provision", mock.Anything, mock.Anything).Return(nil)
	return m
}

// ProvisionedNodes returns the node names passed to Provision in order.
func (m *MockProvisioner) ProvisionedNodes() []string {
	var out []string
	for _, c := range m.Calls {
		out = append(out, c.Arguments.Get(1).(provisioning.Hint).Node)
	}
	return out
}
