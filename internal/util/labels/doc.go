// Package labels provides consistent labeling for node refresh resources.
//
// All keys use the noderefresh.io domain prefix. A builder assembles the
// label set attached to replacement machines, and Selector renders label
// maps into deterministic Kubernetes/Hetzner selector strings.
package labels
