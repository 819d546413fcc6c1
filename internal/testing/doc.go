// Package testing provides mocks, builders, and fixtures shared by the
// operator's unit tests.
//
//   - MockGateway: in-memory cluster implementing gateway.Gateway with
//     per-method overrides and call tracking
//   - MockProvisioner: testify mock for provisioning.Provisioner
//   - EventLog: ordered record of side effects across mocks
//   - NodeBuilder, PodBuilder, RefreshBuilder: fixture builders
//
// Usage:
//
//	events := testing.NewEventLog()
//	gw := testing.NewMockGateway(events,
//	    []corev1.Node{testing.NewNode("old").WithLabels(pool).Aged(96*time.Hour, now).Build()},
//	    []corev1.Pod{testing.NewPod("default", "web").OnNode("old").Build()})
package testing
