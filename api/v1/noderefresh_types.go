package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Defaults applied when the optional spec fields are unset.
const (
	DefaultMaxPodsPerBatch    int32 = 5
	DefaultMinHealthThreshold int32 = 80
)

// NodeRefreshSpec defines which nodes to refresh and how aggressively.
type NodeRefreshSpec struct {
	// TargetNodeLabels selects the node pool to refresh
	// +kubebuilder:validation:MinProperties=1
	TargetNodeLabels map[string]string `json:"targetNodeLabels"`

	// MaxPodsPerBatch bounds how many pods are evicted from a node in one pass
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:default=5
	// +optional
	MaxPodsPerBatch *int32 `json:"maxPodsPerBatch,omitempty"`

	// MinHealthThreshold is the percentage of Ready nodes required before any node is touched
	// +kubebuilder:validation:Minimum=0
	// +kubebuilder:validation:Maximum=100
	// +kubebuilder:default=80
	// +optional
	MinHealthThreshold *int32 `json:"minHealthThreshold,omitempty"`

	// NewDepthThreshold is the node age after which a node is refreshed
	// +kubebuilder:validation:Enum=5min;1hr;1day;2day;3day
	NewDepthThreshold string `json:"newDepthThreshold"`

	// Replacement is passed to the provisioner as a hint for the new node
	// +optional
	Replacement *ReplacementSpec `json:"replacement,omitempty"`

	// Paused stops the operator from reconciling this request
	// +optional
	Paused bool `json:"paused,omitempty"`
}

// ReplacementSpec describes the node that should take over from a refreshed one.
type ReplacementSpec struct {
	// ServerType is the provider machine type (e.g., cx22)
	// +optional
	ServerType string `json:"serverType,omitempty"`

	// Location is the provider location (e.g., nbg1)
	// +optional
	Location string `json:"location,omitempty"`

	// Labels are added to the provisioned machine
	// +optional
	Labels map[string]string `json:"labels,omitempty"`
}

// RefreshPhase is the last observed outcome of a reconciliation pass.
type RefreshPhase string

const (
	// RefreshPhaseWaiting means cluster health is below the configured threshold
	RefreshPhaseWaiting RefreshPhase = "Waiting"
	// RefreshPhaseMonitoring means target nodes exist but none is old enough
	RefreshPhaseMonitoring RefreshPhase = "Monitoring"
	// RefreshPhaseMigrating means a node is being provisioned, migrated and drained
	RefreshPhaseMigrating RefreshPhase = "Migrating"
	// RefreshPhaseComplete means the last pass finished
	RefreshPhaseComplete RefreshPhase = "Complete"
	// RefreshPhaseFailed means the last pass hit a fatal error
	RefreshPhaseFailed RefreshPhase = "Failed"
)

// NodeRefreshStatus is the observed state of a NodeRefresh.
// It is written after every phase transition and never read back to make decisions.
type NodeRefreshStatus struct {
	// +kubebuilder:validation:Enum=Waiting;Monitoring;Migrating;Complete;Failed
	// +optional
	Phase RefreshPhase `json:"phase,omitempty"`

	// +optional
	Message string `json:"message,omitempty"`

	// NodesProcessed is the number of nodes drained by the last completed pass
	// +optional
	NodesProcessed *int32 `json:"nodesProcessed,omitempty"`

	// LastMigration is when the last completed pass finished
	// +optional
	LastMigration *metav1.Time `json:"lastMigration,omitempty"`

	// ObservedGeneration is the generation the last pass evaluated
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Namespaced,shortName=nr
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Processed",type=integer,JSONPath=`.status.nodesProcessed`
// +kubebuilder:printcolumn:name="Message",type=string,JSONPath=`.status.message`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// NodeRefresh is the Schema for the noderefreshes API.
type NodeRefresh struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   NodeRefreshSpec   `json:"spec,omitempty"`
	Status NodeRefreshStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// NodeRefreshList contains a list of NodeRefresh.
type NodeRefreshList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []NodeRefresh `json:"items"`
}
