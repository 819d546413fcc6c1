package hcloud

import (
	"context"
)

// ServerCreateOpts holds the parameters for creating a server.
type ServerCreateOpts struct {
	Name       string
	ServerType string
	Image      string
	Location   string
	SSHKeys    []string
	Labels     map[string]string
	UserData   string
}

// Server is the subset of server state callers need.
type Server struct {
	ID     int64
	Name   string
	Status string
	IPv4   string
}

// Client is the set of Hetzner Cloud operations used by the operator.
type Client interface {
	CreateServer(ctx context.Context, opts ServerCreateOpts) (*Server, error)
	DeleteServer(ctx context.Context, name string) error
	GetServer(ctx context.Context, name string) (*Server, error)
	CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (string, error)
	DeleteSSHKey(ctx context.Context, name string) error
}

var _ Client = (*RealClient)(nil)
