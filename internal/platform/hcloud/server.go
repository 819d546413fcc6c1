package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/noderefresh/internal/util/retry"
)

// CreateServer creates a server and waits for the create action to finish.
func (c *RealClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ServerCreate)
	defer cancel()

	createOpts, err := c.buildServerCreateOpts(ctx, opts)
	if err != nil {
		return nil, err
	}

	var result hcloud.ServerCreateResult
	err = retry.Do(ctx, func(ctx context.Context) error {
		res, _, err := c.client.Server.Create(ctx, createOpts)
		c.record("create_server", err)
		if err != nil {
			if Classify(err) == ResultRejected {
				return retry.Fatal(err)
			}
			return err
		}
		result = res
		return nil
	}, retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return nil, fmt.Errorf("failed to create server %s: %w", opts.Name, err)
	}

	actions := append([]*hcloud.Action{result.Action}, result.NextActions...)
	if err := waitForActions(ctx, c.client, actions...); err != nil {
		return nil, fmt.Errorf("failed to wait for server %s: %w", opts.Name, err)
	}

	return toServer(result.Server), nil
}

func (c *RealClient) buildServerCreateOpts(ctx context.Context, opts ServerCreateOpts) (hcloud.ServerCreateOpts, error) {
	serverType, _, err := c.client.ServerType.Get(ctx, opts.ServerType)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get server type: %w", err)
	}
	if serverType == nil {
		return hcloud.ServerCreateOpts{}, retry.Fatal(fmt.Errorf("server type not found: %s", opts.ServerType))
	}

	image, _, err := c.client.Image.GetForArchitecture(ctx, opts.Image, serverType.Architecture)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get image: %w", err)
	}
	if image == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("image not found: %s (%s)", opts.Image, serverType.Architecture)
	}

	var location *hcloud.Location
	if opts.Location != "" {
		location, _, err = c.client.Location.Get(ctx, opts.Location)
		if err != nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get location %s: %w", opts.Location, err)
		}
		if location == nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("location not found: %s", opts.Location)
		}
	}

	sshKeys := make([]*hcloud.SSHKey, 0, len(opts.SSHKeys))
	for _, name := range opts.SSHKeys {
		key, _, err := c.client.SSHKey.Get(ctx, name)
		if err != nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get ssh key %s: %w", name, err)
		}
		if key == nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("ssh key not found: %s", name)
		}
		sshKeys = append(sshKeys, key)
	}

	return hcloud.ServerCreateOpts{
		Name:       opts.Name,
		ServerType: serverType,
		Image:      image,
		Location:   location,
		SSHKeys:    sshKeys,
		Labels:     opts.Labels,
		UserData:   opts.UserData,
	}, nil
}

// DeleteServer deletes the server with the given name.
func (c *RealClient) DeleteServer(ctx context.Context, name string) error {
	err := deleteByName(ctx, c, "server", name, c.client.Server.Get,
		func(ctx context.Context, server *hcloud.Server) (*hcloud.Response, error) {
			_, resp, err := c.client.Server.DeleteWithResult(ctx, server)
			return resp, err
		})
	c.record("delete_server", err)
	return err
}

// GetServer returns the named server, or nil if it does not exist.
func (c *RealClient) GetServer(ctx context.Context, name string) (*Server, error) {
	server, _, err := c.client.Server.Get(ctx, name)
	c.record("get_server", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}
	if server == nil {
		return nil, nil
	}
	return toServer(server), nil
}

// waitForActions waits for all non-nil actions to complete.
func waitForActions(ctx context.Context, client *hcloud.Client, actions ...*hcloud.Action) error {
	pending := make([]*hcloud.Action, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	return client.Action.WaitFor(ctx, pending...)
}

func toServer(s *hcloud.Server) *Server {
	if s == nil {
		return nil
	}
	out := &Server{ID: s.ID, Name: s.Name, Status: string(s.Status)}
	if ip := s.PublicNet.IPv4.IP; ip != nil {
		out.IPv4 = ip.String()
	}
	return out
}
