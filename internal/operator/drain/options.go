package drain

import "time"

// Option configures a Migrator or Decommissioner.
type Option func(*options)

type options struct {
	systemNamespaces []string
	evictionInterval time.Duration
}

func defaultOptions() options {
	return options{
		systemNamespaces: DefaultSystemNamespaces,
		evictionInterval: time.Second,
	}
}

// WithSystemNamespaces replaces the protected namespace set. kube-system
// stays protected.
func WithSystemNamespaces(namespaces []string) Option {
	return func(o *options) {
		o.systemNamespaces = namespaces
	}
}

// WithEvictionInterval sets the minimum spacing between evictions. Zero
// disables spacing.
func WithEvictionInterval(d time.Duration) Option {
	return func(o *options) {
		o.evictionInterval = d
	}
}
