package provision

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"

	"github.com/glyco-ml/glyco/cmd/glyco/env"
	"github.com/glyco-ml/glyco/cmd/glyco/rest"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	"github.com/glyco-ml/glyco/pkg/provision"
)

type Flags struct {
	Project     string `flag:"project" help:"project name baked into resource names"`
	Environment string `flag:"environment" help:"environment name baked into resource names (dev, prod, ...)"`
	Location    string `flag:"location" help:"region to provision into. Default: glycoenv."`
	DryRun      bool   `flag:"dry-run" help:"print the resource definitions without submitting them"`
}

type seeder func() int64

// Option hooks are for tests.
type Option func(*Command) *Command

type Command struct {
	seed seeder
}

func WithSeed(seed func() int64) Option {
	return func(c *Command) *Command {
		c.seed = seed
		return c
	}
}

func New(opt ...Option) (flarc.Command, error) {
	c := &Command{
		seed: func() int64 { return time.Now().UnixNano() },
	}
	for _, o := range opt {
		c = o(c)
	}

	return flarc.NewCommand(
		"provision workspace resources with collision-free names.",
		Flags{
			Project:     "glyco",
			Environment: "dev",
		},
		flarc.Args{},
		common.NewTask(Task(c.seed)),
		flarc.WithDescription(`
Generate the full resource set for a workspace (resource group, workspace,
storage account, key vault, application insights, compute cluster). All
names share one fresh random suffix, so repeated runs never collide with
earlier, possibly soft-deleted resources.

With --dry-run the declarative definitions are printed and nothing is
submitted.
`),
	)
}

func Task(seed seeder) common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		glycoEnv env.GlycoEnv,
		client rest.GlycoClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		location := flags.Location
		if location == "" {
			location = glycoEnv.Location
		}
		if location == "" {
			return fmt.Errorf("%w: pass --location or set it in glycoenv", flarc.ErrUsage)
		}

		rng := rand.New(rand.NewSource(seed()))
		names := provision.NewNameSet(flags.Project, flags.Environment, rng)
		defs := provision.Definitions(names, location)

		if flags.DryRun {
			out, err := yaml.Marshal(defs)
			if err != nil {
				return err
			}
			if _, err := cl.Stdout().Write(out); err != nil {
				return err
			}
			return nil
		}

		applied, err := client.ApplyResources(ctx, defs)
		if err != nil {
			return err
		}
		for _, a := range applied {
			logger.Printf("%s %s: %s", a.Kind, a.Name, a.ProvisioningState)
		}

		out, err := yaml.Marshal(names.Outputs())
		if err != nil {
			return err
		}
		_, err = cl.Stdout().Write(out)
		return err
	}
}
