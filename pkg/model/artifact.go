package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ArtifactFilename is the conventional name of a persisted model
// inside a run's artifact directory.
const ArtifactFilename = "model.json"

var ErrMalformedArtifact = errors.New("malformed model artifact")

// Artifact is a fitted model persisted together with the metadata
// a deployment needs to serve it.
type Artifact struct {
	Model     LogisticRegression `json:"model"`
	TrainedAt time.Time          `json:"trainedAt"`
}

// Save writes the artifact as JSON at path.
func (a Artifact) Save(path string) error {
	buf, err := json.MarshalIndent(a, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// LoadArtifact reads an artifact from path and verifies it is servable.
func LoadArtifact(path string) (*Artifact, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	a := new(Artifact)
	if err := json.Unmarshal(buf, a); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformedArtifact, path, err)
	}

	m := a.Model
	if len(m.Weights) == 0 ||
		len(m.Weights) != len(m.Columns) ||
		len(m.Means) != len(m.Columns) ||
		len(m.Stds) != len(m.Columns) {
		return nil, fmt.Errorf("%w: %s: inconsistent shape", ErrMalformedArtifact, path)
	}

	return a, nil
}
