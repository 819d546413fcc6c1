// Package drain moves workload off a node in two stages.
//
// [Migrator] evicts a bounded batch of pods through the eviction API, which
// honors PodDisruptionBudgets, spacing calls with a rate limiter.
// [Decommissioner] then cordons the node and deletes whatever is left with
// a zero grace period.
//
// Pods in system namespaces are never evicted or deleted by either stage.
// Per-pod failures are collected in the result as [PodFailure] values and
// never abort the batch.
package drain
