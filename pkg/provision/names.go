package provision

import (
	"fmt"
	"math/rand"
	"strings"
)

// SuffixLength is the length of the random suffix shared by all
// resource names of one provisioning run.
const SuffixLength = 6

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// storage account names: lowercase alphanumerics, at most 24 chars.
const maxStorageAccountName = 24

// NameSet is the tuple of resource names provisioned and torn down
// together. All names share one random Suffix, so a fresh run never
// collides with soft-deleted resources of an earlier one.
type NameSet struct {
	Suffix         string
	ResourceGroup  string
	Workspace      string
	StorageAccount string
	KeyVault       string
	AppInsights    string
	ComputeCluster string
}

// NewNameSet derives a NameSet for the given project and environment.
//
// The random source is passed explicitly; the same source state yields
// the same suffix, and the suffix is fixed for the returned set.
func NewNameSet(project string, environment string, rng *rand.Rand) NameSet {
	suffix := make([]byte, SuffixLength)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rng.Intn(len(suffixAlphabet))]
	}

	s := string(suffix)
	return NameSet{
		Suffix:         s,
		ResourceGroup:  fmt.Sprintf("rg-%s-%s-%s", project, environment, s),
		Workspace:      fmt.Sprintf("mlw-%s-%s-%s", project, environment, s),
		StorageAccount: storageAccountName(project, environment, s),
		KeyVault:       fmt.Sprintf("kv-%s-%s-%s", project, environment, s),
		AppInsights:    fmt.Sprintf("appi-%s-%s-%s", project, environment, s),
		ComputeCluster: fmt.Sprintf("cc-%s-%s-%s", project, environment, s),
	}
}

func storageAccountName(project, environment, suffix string) string {
	name := "st" + alnum(project) + alnum(environment)
	if budget := maxStorageAccountName - len(suffix); len(name) > budget {
		name = name[:budget]
	}
	return name + suffix
}

func alnum(s string) string {
	keep := func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			return r
		}
		return -1
	}
	return strings.Map(keep, strings.ToLower(s))
}

// Outputs are the named string values retrievable after provisioning.
func (n NameSet) Outputs() map[string]string {
	return map[string]string{
		"resource_group_name":  n.ResourceGroup,
		"workspace_name":       n.Workspace,
		"storage_account_name": n.StorageAccount,
		"key_vault_name":       n.KeyVault,
		"app_insights_name":    n.AppInsights,
		"compute_cluster_name": n.ComputeCluster,
	}
}
