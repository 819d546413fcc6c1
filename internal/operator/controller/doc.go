// Package controller drives NodeRefresh requests.
//
// A Scheduler wakes up on a fixed interval, lists every NodeRefresh and
// hands each one to a RefreshReconciler. A reconciliation pass recomputes
// everything from live cluster state:
//
//	validate -> health gate -> target nodes -> age filter -> per node:
//	  provision -> migrate batch -> stabilize -> cordon + drain
//
// Status is written after every phase change and is never read back to
// make decisions, so a crashed or interrupted pass is simply redone on the
// next tick.
package controller
