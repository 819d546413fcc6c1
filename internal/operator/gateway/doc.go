// Package gateway is the operator's only path to the Kubernetes API.
//
// The [Gateway] interface covers node listing and cordoning, pod eviction
// and deletion, and NodeRefresh status writes. [KubeGateway] implements it on
// a controller-runtime client. Every error it returns is an [*Error] carrying
// a [Kind], so callers can tell a disruption-budget rejection from a pod that
// is already gone without inspecting API status codes themselves.
package gateway
