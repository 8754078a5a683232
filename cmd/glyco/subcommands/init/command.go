package init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"

	prof "github.com/glyco-ml/glyco/cmd/glyco/config/profiles"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
)

const ARG_PROFILE_FILE = "GLYCO_PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"initialize this directory as a glyco-powered project.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PROFILE_FILE, Required: true,
				Help: "filepath to a glycoprofile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Register a new glycoprofile into your profile store.

A "glycoprofile" describes a workspace control plane: its API root,
credentials and certificate. "{{ .Command }}" registers the given file
into your profile store and marks this directory as using it.

The name of the profile is given by "--profile" ( default: current filepath ).
`),
	)
}

func Task() common.GlycoTaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		profFile := cl.Args()[ARG_PROFILE_FILE][0]

		profStore, err := prof.LoadProfileStore(commonFlag.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			// ok.
			profStore = prof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf(
				"failed to load profile store (%s): %w", commonFlag.ProfileStore, err,
			)
		}

		newProf := new(prof.GlycoProfile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				return fmt.Errorf("failed to read profile file (%s): %w", profFile, err)
			}
			if err := yaml.Unmarshal(content, newProf); err != nil {
				return fmt.Errorf("failed to parse profile file (%s): %w", profFile, err)
			}
		}
		if err := newProf.Verify(); err != nil {
			return fmt.Errorf("%s: %w", profFile, err)
		}

		profName := commonFlag.Profile
		profStore[profName] = newProf
		if err := profStore.Save(commonFlag.ProfileStore); err != nil {
			return fmt.Errorf(
				"failed to save profile store (%s): %w", commonFlag.ProfileStore, err,
			)
		}
		logger.Printf("profile %s is saved to %s", profName, commonFlag.ProfileStore)

		f, err := os.OpenFile(".glycoprofile", os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(0600))
		if err != nil {
			return fmt.Errorf("failed to open .glycoprofile: %w", err)
		}
		defer f.Close()
		if _, err := f.WriteString(profName + "\n"); err != nil {
			return fmt.Errorf("failed to write .glycoprofile: %w", err)
		}

		return nil
	}
}
