package provisioning

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/noderefresh/internal/platform/hcloud"
	"github.com/imamik/noderefresh/internal/util/keygen"
	"github.com/imamik/noderefresh/internal/util/labels"
)

// maxServerNameLength is the Hetzner Cloud limit for server names.
const maxServerNameLength = 63

// HCloudOptions are the defaults for replacement servers.
type HCloudOptions struct {
	ServerType string
	Location   string
	Image      string
	SSHKeys    []string
	Labels     map[string]string
	UserData   string
}

// HCloud creates a Hetzner Cloud server for every replaced node.
type HCloud struct {
	client  hcloud.Client
	opts    HCloudOptions
	clock   clock.PassiveClock
	keyFunc func(comment string) (*keygen.KeyPair, error)
}

var _ Provisioner = (*HCloud)(nil)

// NewHCloud creates an HCloud provisioner.
func NewHCloud(client hcloud.Client, opts HCloudOptions) *HCloud {
	return &HCloud{
		client:  client,
		opts:    opts,
		clock:   clock.RealClock{},
		keyFunc: keygen.GenerateEd25519,
	}
}

func (p *HCloud) Name() string { return "hcloud" }

// Provision creates the server with a throwaway SSH key, so Hetzner does not
// email a root password. The key is removed again once the server exists.
func (p *HCloud) Provision(ctx context.Context, hint Hint) error {
	logger := log.FromContext(ctx).WithValues("node", hint.Node)

	name := p.serverName(hint.Node)
	serverType, location := p.opts.ServerType, p.opts.Location
	var extraLabels map[string]string
	if r := hint.Replacement; r != nil {
		if r.ServerType != "" {
			serverType = r.ServerType
		}
		if r.Location != "" {
			location = r.Location
		}
		extraLabels = r.Labels
	}

	serverLabels := labels.NewLabelBuilder(hint.Request.Namespace, hint.Request.Name).
		WithReplaces(hint.Node).
		Merge(p.opts.Labels).
		Merge(extraLabels).
		Build()

	keyPair, err := p.keyFunc(name)
	if err != nil {
		return fmt.Errorf("failed to generate ssh key: %w", err)
	}
	keyName := name + "-key"
	if _, err := p.client.CreateSSHKey(ctx, keyName, string(keyPair.PublicKey), serverLabels); err != nil {
		return fmt.Errorf("failed to upload ssh key: %w", err)
	}
	defer func() {
		if err := p.client.DeleteSSHKey(context.WithoutCancel(ctx), keyName); err != nil {
			logger.Error(err, "failed to delete ephemeral ssh key", "key", keyName)
		}
	}()

	sshKeys := append(append([]string{}, p.opts.SSHKeys...), keyName)

	logger.Info("creating replacement server", "server", name, "serverType", serverType, "location", location)
	server, err := p.client.CreateServer(ctx, hcloud.ServerCreateOpts{
		Name:       name,
		ServerType: serverType,
		Image:      p.opts.Image,
		Location:   location,
		SSHKeys:    sshKeys,
		Labels:     serverLabels,
		UserData:   p.opts.UserData,
	})
	if err != nil {
		return fmt.Errorf("failed to provision replacement for %s: %w", hint.Node, err)
	}

	logger.Info("replacement server created", "server", server.Name, "id", server.ID)
	return nil
}

// serverName derives a unique, hostname-safe server name from the node name.
func (p *HCloud) serverName(node string) string {
	suffix := "-r" + strconv.FormatInt(p.clock.Now().Unix(), 36)
	base := strings.ToLower(node)
	if limit := maxServerNameLength - len(suffix); len(base) > limit {
		base = strings.TrimRight(base[:limit], "-.")
	}
	return base + suffix
}
