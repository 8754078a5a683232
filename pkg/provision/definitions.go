package provision

import (
	"github.com/glyco-ml/glyco/pkg/api/types/resources"
)

// Resource kinds understood by the control plane.
const (
	KindResourceGroup  = "resourceGroup"
	KindStorageAccount = "storageAccount"
	KindKeyVault       = "keyVault"
	KindAppInsights    = "appInsights"
	KindWorkspace      = "workspace"
	KindComputeCluster = "computeCluster"
)

// Definitions renders the declarative resource definitions for one
// name set, in dependency order: the resource group first, the
// workspace after its backing services, compute last.
func Definitions(n NameSet, location string) []resources.Definition {
	return []resources.Definition{
		{
			Kind: KindResourceGroup,
			Name: n.ResourceGroup,
			Properties: map[string]string{
				"location": location,
			},
		},
		{
			Kind: KindStorageAccount,
			Name: n.StorageAccount,
			Properties: map[string]string{
				"resourceGroup": n.ResourceGroup,
				"location":      location,
				"sku":           "Standard_LRS",
			},
		},
		{
			Kind: KindKeyVault,
			Name: n.KeyVault,
			Properties: map[string]string{
				"resourceGroup": n.ResourceGroup,
				"location":      location,
			},
		},
		{
			Kind: KindAppInsights,
			Name: n.AppInsights,
			Properties: map[string]string{
				"resourceGroup": n.ResourceGroup,
				"location":      location,
			},
		},
		{
			Kind: KindWorkspace,
			Name: n.Workspace,
			Properties: map[string]string{
				"resourceGroup":  n.ResourceGroup,
				"location":       location,
				"storageAccount": n.StorageAccount,
				"keyVault":       n.KeyVault,
				"appInsights":    n.AppInsights,
			},
		},
		{
			Kind: KindComputeCluster,
			Name: n.ComputeCluster,
			Properties: map[string]string{
				"resourceGroup": n.ResourceGroup,
				"workspace":     n.Workspace,
				"vmSize":        "STANDARD_DS11_V2",
				"minInstances":  "0",
				"maxInstances":  "2",
			},
		},
	}
}
