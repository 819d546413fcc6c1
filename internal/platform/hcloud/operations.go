package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/noderefresh/internal/util/retry"
)

// deleteByName removes a named resource. A resource that does not exist
// counts as deleted. Locked or rate-limited deletes are retried.
func deleteByName[T comparable](
	ctx context.Context,
	c *RealClient,
	kind, name string,
	get func(context.Context, string) (T, *hcloud.Response, error),
	del func(context.Context, T) (*hcloud.Response, error),
) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	var zero T
	return retry.Do(ctx, func(ctx context.Context) error {
		resource, _, err := get(ctx, name)
		if err != nil {
			return retry.Fatal(fmt.Errorf("failed to get %s: %w", kind, err))
		}
		if resource == zero {
			return nil
		}

		if _, err := del(ctx, resource); err != nil {
			if Classify(err).Retryable() {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete %s %s: %w", kind, name, err))
		}
		return nil
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
}
