package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glyco-ml/glyco/pkg/model"
)

// Store is a local experiment-tracking sink.
//
// Each run gets its own directory under <root>/<experiment>/<runId>/
// holding run metadata, logged params & metrics, and model artifacts.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Run statuses written to run metadata.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

type runMeta struct {
	RunId      string             `yaml:"runId"`
	Experiment string             `yaml:"experiment"`
	Status     string             `yaml:"status"`
	StartedAt  time.Time          `yaml:"startedAt"`
	EndedAt    *time.Time         `yaml:"endedAt,omitempty"`
	Params     map[string]string  `yaml:"params,omitempty"`
	Metrics    map[string]float64 `yaml:"metrics,omitempty"`
}

// Run is one training invocation being tracked.
type Run struct {
	dir  string
	meta runMeta
}

// NewRun creates a run directory and returns the live run.
func (s *Store) NewRun(experiment string) (*Run, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return nil, err
	}
	now := time.Now()
	runId := fmt.Sprintf("%s-%s", now.Format("20060102-150405"), hex.EncodeToString(suffix))

	dir := filepath.Join(s.root, experiment, runId)
	if err := os.MkdirAll(filepath.Join(dir, "artifacts"), 0755); err != nil {
		return nil, err
	}

	run := &Run{
		dir: dir,
		meta: runMeta{
			RunId:      runId,
			Experiment: experiment,
			Status:     StatusRunning,
			StartedAt:  now,
			Params:     map[string]string{},
			Metrics:    map[string]float64{},
		},
	}
	if err := run.flush(); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *Run) Id() string {
	return r.meta.RunId
}

func (r *Run) Dir() string {
	return r.dir
}

// ArtifactPath is where the run's model artifact is (to be) stored.
func (r *Run) ArtifactPath() string {
	return filepath.Join(r.dir, "artifacts", model.ArtifactFilename)
}

func (r *Run) LogParam(key string, value string) {
	r.meta.Params[key] = value
}

func (r *Run) LogMetric(key string, value float64) {
	r.meta.Metrics[key] = value
}

// SaveModel persists the fitted model as this run's artifact.
func (r *Run) SaveModel(a model.Artifact) error {
	return a.Save(r.ArtifactPath())
}

// Finish seals the run with the given status and writes its metadata.
func (r *Run) Finish(status string) error {
	now := time.Now()
	r.meta.Status = status
	r.meta.EndedAt = &now
	return r.flush()
}

func (r *Run) flush() error {
	buf, err := yaml.Marshal(r.meta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.dir, "run.yaml"), buf, 0644)
}

// LoadRunMeta reads back the metadata of a finished or running run.
//
// Exposed for inspection and tests.
func LoadRunMeta(dir string) (RunMeta, error) {
	buf, err := os.ReadFile(filepath.Join(dir, "run.yaml"))
	if err != nil {
		return RunMeta{}, err
	}
	meta := RunMeta{}
	if err := yaml.Unmarshal(buf, &meta); err != nil {
		return RunMeta{}, err
	}
	return meta, nil
}

// RunMeta is the public shape of a run's recorded metadata.
type RunMeta struct {
	RunId      string             `yaml:"runId"`
	Experiment string             `yaml:"experiment"`
	Status     string             `yaml:"status"`
	StartedAt  time.Time          `yaml:"startedAt"`
	EndedAt    *time.Time         `yaml:"endedAt,omitempty"`
	Params     map[string]string  `yaml:"params,omitempty"`
	Metrics    map[string]float64 `yaml:"metrics,omitempty"`
}
