// Package hcloud wraps the Hetzner Cloud API for replacement-node
// provisioning.
//
// [RealClient] resolves names (server type, image, location, SSH keys) to
// API objects, creates servers with retry, and deletes resources by name.
// Every call is reported to an optional [CallObserver] with its [Classify]
// result: rejected requests are never retried, locked or rate-limited ones
// are.
package hcloud
