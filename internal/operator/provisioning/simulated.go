package provisioning

import (
	"context"
	"time"

	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Simulated waits for a fixed delay and reports success.
type Simulated struct {
	delay time.Duration
	clock clock.Clock
}

var _ Provisioner = (*Simulated)(nil)

// SimulatedOption configures a Simulated provisioner.
type SimulatedOption func(*Simulated)

// WithClock replaces the wall clock (for tests).
func WithClock(c clock.Clock) SimulatedOption {
	return func(s *Simulated) {
		s.clock = c
	}
}

// NewSimulated creates a Simulated provisioner.
func NewSimulated(delay time.Duration, opts ...SimulatedOption) *Simulated {
	s := &Simulated{delay: delay, clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulated) Name() string { return "simulated" }

func (s *Simulated) Provision(ctx context.Context, hint Hint) error {
	logger := log.FromContext(ctx).WithValues("node", hint.Node)
	logger.Info("provisioning replacement node", "provisioner", s.Name(), "delay", s.delay)

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(s.delay):
		}
	}

	logger.Info("replacement node provisioned")
	return nil
}
