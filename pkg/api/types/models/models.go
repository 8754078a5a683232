package models

// Summary is a registered model version in a workspace.
type Summary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Name == o.Name &&
		s.Version == o.Version &&
		s.Description == o.Description
}
