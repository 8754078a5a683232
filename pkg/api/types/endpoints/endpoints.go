package endpoints

// Summary is an online endpoint as listed in a workspace.
type Summary struct {
	Name              string `json:"name"`
	ProvisioningState string `json:"provisioningState"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Name == o.Name &&
		s.ProvisioningState == o.ProvisioningState
}

// Detail is an online endpoint with its scoring route and traffic split.
type Detail struct {
	Summary
	ScoringURI string         `json:"scoringUri"`
	Traffic    map[string]int `json:"traffic,omitempty"`
}

func (d Detail) Equal(o Detail) bool {
	if !d.Summary.Equal(o.Summary) || d.ScoringURI != o.ScoringURI {
		return false
	}
	if len(d.Traffic) != len(o.Traffic) {
		return false
	}
	for k, v := range d.Traffic {
		if ov, ok := o.Traffic[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
