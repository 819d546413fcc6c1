package provisioning

import (
	"context"
	"maps"
	"sync"

	"github.com/imamik/noderefresh/internal/platform/hcloud"
)

// mockHCloudClient is a mock implementation of hcloud.Client for testing.
type mockHCloudClient struct {
	mu sync.Mutex

	CreateServerFunc func(ctx context.Context, opts hcloud.ServerCreateOpts) (*hcloud.Server, error)
	CreateSSHKeyFunc func(ctx context.Context, name, publicKey string, labels map[string]string) (string, error)
	DeleteSSHKeyFunc func(ctx context.Context, name string) error

	CreateServerCalls []hcloud.ServerCreateOpts
	CreateSSHKeyCalls []createSSHKeyCall
	DeleteSSHKeyCalls []string
	DeleteServerCalls []string
}

type createSSHKeyCall struct {
	Name      string
	PublicKey string
	Labels    map[string]string
}

func (m *mockHCloudClient) CreateServer(ctx context.Context, opts hcloud.ServerCreateOpts) (*hcloud.Server, error) {
	m.mu.Lock()
	m.CreateServerCalls = append(m.CreateServerCalls, opts)
	m.mu.Unlock()

	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, opts)
	}
	return &hcloud.Server{ID: 12345, Name: opts.Name}, nil
}

func (m *mockHCloudClient) DeleteServer(_ context.Context, name string) error {
	m.mu.Lock()
	m.DeleteServerCalls = append(m.DeleteServerCalls, name)
	m.mu.Unlock()
	return nil
}

func (m *mockHCloudClient) GetServer(context.Context, string) (*hcloud.Server, error) {
	return nil, nil
}

func (m *mockHCloudClient) CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (string, error) {
	m.mu.Lock()
	m.CreateSSHKeyCalls = append(m.CreateSSHKeyCalls, createSSHKeyCall{
		Name:      name,
		PublicKey: publicKey,
		Labels:    maps.Clone(labels),
	})
	m.mu.Unlock()

	if m.CreateSSHKeyFunc != nil {
		return m.CreateSSHKeyFunc(ctx, name, publicKey, labels)
	}
	return "1", nil
}

func (m *mockHCloudClient) DeleteSSHKey(ctx context.Context, name string) error {
	m.mu.Lock()
	m.DeleteSSHKeyCalls = append(m.DeleteSSHKeyCalls, name)
	m.mu.Unlock()

	if m.DeleteSSHKeyFunc != nil {
		return m.DeleteSSHKeyFunc(ctx, name)
	}
	return nil
}
