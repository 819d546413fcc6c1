package controller

import (
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/operator/gateway"
)

const (
	defaultPollInterval = 60 * time.Second
	defaultErrorBackoff = 30 * time.Second
)

type passRunner interface {
	ReconcileRefresh(ctx context.Context, nr *migrationv1.NodeRefresh) PassResult
}

// Scheduler reconciles every NodeRefresh once per tick, strictly one after
// the other.
type Scheduler struct {
	gw           gateway.Gateway
	runner       passRunner
	pollInterval time.Duration
	errorBackoff time.Duration
	sleep        Sleeper
}

var (
	_ manager.Runnable               = (*Scheduler)(nil)
	_ manager.LeaderElectionRunnable = (*Scheduler)(nil)
)

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithPollInterval sets the pause after a successful tick.
func WithPollInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.pollInterval = d
	}
}

// WithErrorBackoff sets the pause after a tick that could not list requests.
func WithErrorBackoff(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.errorBackoff = d
	}
}

// WithSchedulerSleeper replaces the wait between ticks.
func WithSchedulerSleeper(sl Sleeper) SchedulerOption {
	return func(s *Scheduler) {
		s.sleep = sl
	}
}

// NewScheduler creates a Scheduler that lists requests through gw and runs
// passes with runner.
func NewScheduler(gw gateway.Gateway, runner passRunner, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		gw:           gw,
		runner:       runner,
		pollInterval: defaultPollInterval,
		errorBackoff: defaultErrorBackoff,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick runs one pass for every request. A request's outcome never prevents
// the next one from running. The error is non-nil only when the requests
// could not be listed or ctx ended.
func (s *Scheduler) Tick(ctx context.Context) error {
	logger := log.FromContext(ctx)

	requests, err := s.gw.ListRefreshes(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate requests: %w", err)
	}
	logger.V(1).Info("tick", "requests", len(requests))

	for i := range requests {
		nr := &requests[i]
		if nr.Spec.Paused {
			logger.V(1).Info("request is paused, skipping", "request", types.NamespacedName{Namespace: nr.Namespace, Name: nr.Name})
			continue
		}
		if s.runner.ReconcileRefresh(ctx, nr).Interrupted() {
			return ctx.Err()
		}
	}
	return nil
}

// Start implements manager.Runnable. It ticks until ctx is done, pausing
// pollInterval after a good tick and errorBackoff after a failed one.
func (s *Scheduler) Start(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("scheduler")
	ctx = log.IntoContext(ctx, logger)
	logger.Info("starting", "pollInterval", s.pollInterval, "errorBackoff", s.errorBackoff)

	for {
		delay := s.pollInterval
		if err := s.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error(err, "tick abandoned", "retryIn", s.errorBackoff)
			delay = s.errorBackoff
		}
		if err := s.sleep(ctx, delay); err != nil {
			break
		}
	}

	logger.Info("stopped")
	return nil
}

// NeedLeaderElection implements manager.LeaderElectionRunnable. Only the
// elected replica runs passes.
func (s *Scheduler) NeedLeaderElection() bool {
	return true
}
