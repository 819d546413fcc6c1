package hcloud

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// CreateSSHKey uploads a public key and returns its ID. Replacement servers
// get a per-server key so no long-lived key is shared between them.
func (c *RealClient) CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (string, error) {
	key, _, err := c.client.SSHKey.Create(ctx, hcloud.SSHKeyCreateOpts{
		Name:      name,
		PublicKey: publicKey,
		Labels:    labels,
	})
	c.record("create_ssh_key", err)
	if err != nil {
		return "", fmt.Errorf("failed to create ssh key: %w", err)
	}
	return strconv.FormatInt(key.ID, 10), nil
}

// DeleteSSHKey removes a key uploaded by CreateSSHKey. A missing key is not
// an error.
func (c *RealClient) DeleteSSHKey(ctx context.Context, name string) error {
	err := deleteByName(ctx, c, "ssh key", name, c.client.SSHKey.Get, c.client.SSHKey.Delete)
	c.record("delete_ssh_key", err)
	return err
}
