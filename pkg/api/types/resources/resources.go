package resources

// Definition is a declarative description of one workspace resource,
// submitted to the control plane on provisioning.
type Definition struct {
	Kind       string            `json:"kind" yaml:"kind"`
	Name       string            `json:"name" yaml:"name"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

func (d Definition) Equal(o Definition) bool {
	if d.Kind != o.Kind || d.Name != o.Name || len(d.Properties) != len(o.Properties) {
		return false
	}
	for k, v := range d.Properties {
		if ov, ok := o.Properties[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Detail is the provisioning state of one resource, as reported back.
type Detail struct {
	Kind              string `json:"kind"`
	Name              string `json:"name"`
	ProvisioningState string `json:"provisioningState"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Kind == o.Kind &&
		d.Name == o.Name &&
		d.ProvisioningState == o.ProvisioningState
}
