// Package retry retries transient failures with capped exponential backoff.
//
// [Do] is used around Hetzner Cloud calls made by the provisioner. Errors
// wrapped with [Fatal] stop the loop immediately.
package retry
