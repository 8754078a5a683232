package env

import (
	"os"

	"gopkg.in/yaml.v3"
)

// GlycoEnv carries project-level defaults read from a "glycoenv" file
// at the project root: the experiment name runs are tracked under and
// default training parameters.
type GlycoEnv struct {
	Experiment string            `yaml:"experiment"`
	Params     map[string]string `yaml:"params"`
	Location   string            `yaml:"location"`

	// workspace scope used when flags leave it unspecified
	ResourceGroup string `yaml:"resourceGroup"`
	Workspace     string `yaml:"workspace"`
}

func New() *GlycoEnv {
	return new(GlycoEnv)
}

// Param returns the named default, or fallback when not declared.
func (ge *GlycoEnv) Param(name string, fallback string) string {
	if v, ok := ge.Params[name]; ok {
		return v
	}
	return fallback
}

// LoadGlycoEnv reads a glycoenv file.
//
// A missing file is not an error; it yields the zero env.
func LoadGlycoEnv(filepath string) (*GlycoEnv, error) {

	env := GlycoEnv{}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return &env, nil
	}

	err = yaml.Unmarshal(content, &env)
	if err != nil {
		return nil, err
	}

	return &env, nil
}
