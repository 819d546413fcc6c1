// Package v1 contains API Schema definitions for the migration.io v1 API group
// +kubebuilder:object:generate=true
// +groupName=migration.io
package v1

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	// GroupVersion is group version used to register these objects
	GroupVersion = schema.GroupVersion{Group: "migration.io", Version: "v1"}

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds the types in this group-version to the given scheme
	AddToScheme = SchemeBuilder.AddToScheme

	// Scheme is the runtime scheme containing core types and NodeRefresh
	Scheme = runtime.NewScheme()
)

func init() {
	SchemeBuilder.Register(&NodeRefresh{}, &NodeRefreshList{})

	// Core types (Node, Pod) are needed by every client built from this scheme
	_ = clientgoscheme.AddToScheme(Scheme)

	_ = AddToScheme(Scheme)
}
