// Package main is the entrypoint for the noderefresh operator.
package main

import (
	"flag"
	"os"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	migrationv1 "github.com/imamik/noderefresh/api/v1"
	"github.com/imamik/noderefresh/internal/config"
	"github.com/imamik/noderefresh/internal/operator/controller"
	"github.com/imamik/noderefresh/internal/operator/gateway"
	"github.com/imamik/noderefresh/internal/operator/provisioning"
)

var (
	setupLog = ctrl.Log.WithName("setup")

	// Version is set at build time
	Version = "dev"
)

func main() {
	var (
		metricsAddr          string
		probeAddr            string
		enableLeaderElection bool
		leaderElectionID     string
		configPath           string
	)

	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metric endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", true, "Enable leader election for controller manager.")
	flag.StringVar(&leaderElectionID, "leader-election-id", "noderefresh-operator", "The name of the leader election resource.")
	flag.StringVar(&configPath, "config", "", "Path to the operator configuration file.")

	opts := zap.Options{
		Development: os.Getenv("DEBUG") == "true",
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	setupLog.Info("starting noderefresh-operator", "version", Version)

	cfg, err := config.Load(configPath)
	if err != nil {
		setupLog.Error(err, "unable to load configuration")
		os.Exit(1)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme: migrationv1.Scheme,
		Metrics: metricsserver.Options{
			BindAddress: metricsAddr,
		},
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       leaderElectionID,
		// LeaderElectionReleaseOnCancel defines if the leader should step down voluntarily
		// when the Manager ends. This requires the binary to immediately end when the
		// Manager is stopped, otherwise, this setting is unsafe.
		LeaderElectionReleaseOnCancel: true,
	})
	if err != nil {
		setupLog.Error(err, "unable to create manager")
		os.Exit(1)
	}

	prov, err := provisioning.FromConfig(cfg.Provisioner, controller.RecordHCloudAPICall)
	if err != nil {
		setupLog.Error(err, "unable to create provisioner", "kind", cfg.Provisioner.Kind)
		os.Exit(1)
	}

	// Every pass reads live state through the API reader; writes go through the manager client.
	gw := gateway.New(mgr.GetClient(), gateway.WithReader(mgr.GetAPIReader()))

	reconciler := controller.NewRefreshReconciler(gw,
		controller.WithConfig(cfg),
		controller.WithProvisioner(prov),
	)
	scheduler := controller.NewScheduler(gw, reconciler,
		controller.WithPollInterval(cfg.PollInterval.Std()),
		controller.WithErrorBackoff(cfg.ErrorBackoff.Std()),
	)
	if err := mgr.Add(scheduler); err != nil {
		setupLog.Error(err, "unable to register scheduler")
		os.Exit(1)
	}

	// Add health checks
	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("starting manager",
		"provisioner", prov.Name(),
		"pollInterval", cfg.PollInterval.String(),
		"systemNamespaces", cfg.SystemNamespaces,
	)
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}
