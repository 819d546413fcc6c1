// Package keygen generates throwaway ed25519 SSH key pairs.
//
// Replacement servers need an SSH key at creation time. The provisioner
// uploads the public half, creates the server, then deletes the key again.
package keygen
