// Package provisioning brings up replacement capacity before a node is
// drained.
//
// A [Provisioner] is an opaque action that succeeds or fails. [Simulated]
// only waits, which is enough for clusters where an autoscaler adds nodes on
// its own. [HCloud] creates a Hetzner Cloud server labelled with the request
// and the node it replaces.
package provisioning
