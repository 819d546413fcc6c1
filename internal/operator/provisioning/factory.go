package provisioning

import (
	"fmt"

	"github.com/imamik/noderefresh/internal/config"
	"github.com/imamik/noderefresh/internal/platform/hcloud"
)

// FromConfig builds the provisioner selected by cfg.Kind. observer, if set,
// is told about every Hetzner Cloud API call.
func FromConfig(cfg config.ProvisionerConfig, observer hcloud.CallObserver) (Provisioner, error) {
	switch cfg.Kind {
	case "", config.ProvisionerSimulated:
		return NewSimulated(cfg.SimulatedDelay.Std()), nil
	case config.ProvisionerHCloud:
		if cfg.HCloud.Token == "" {
			return nil, fmt.Errorf("hcloud provisioner requires HCLOUD_TOKEN")
		}
		var opts []hcloud.ClientOption
		if observer != nil {
			opts = append(opts, hcloud.WithCallObserver(observer))
		}
		client := hcloud.NewRealClient(cfg.HCloud.Token, opts...)
		return NewHCloud(client, HCloudOptions{
			ServerType: cfg.HCloud.ServerType,
			Location:   cfg.HCloud.Location,
			Image:      cfg.HCloud.Image,
			SSHKeys:    cfg.HCloud.SSHKeys,
			Labels:     cfg.HCloud.Labels,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provisioner kind %q", cfg.Kind)
	}
}
