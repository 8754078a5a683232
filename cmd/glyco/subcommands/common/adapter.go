package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/youta-t/flarc"

	"github.com/glyco-ml/glyco/cmd/glyco/config/profiles"
	"github.com/glyco-ml/glyco/cmd/glyco/env"
	grest "github.com/glyco-ml/glyco/cmd/glyco/rest"
	sublog "github.com/glyco-ml/glyco/cmd/glyco/subcommands/logger"
)

type GlycoTaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task GlycoTaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := sublog.Prefixed(cl.Stderr(), cl.Fullname())

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	glycoEnv env.GlycoEnv,
	client grest.GlycoClient,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTask[T any](task Task[T]) flarc.Task[T] {

	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		profile, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, profiles.ErrProfileStoreNotFound) {
				return fmt.Errorf(
					"%w: glycoprofile store (%s) is not found. Please try `glyco init` first. Ask your admin to get a glycoprofile",
					err, commonFlag.ProfileStore,
				)
			}
			return fmt.Errorf(
				"%w: failed to load glycoprofile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		prof, ok := profile[commonFlag.Profile]
		if !ok {
			return fmt.Errorf(
				"profile '%s' not found in the profile store (%s)",
				commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		e, err := env.LoadGlycoEnv(commonFlag.Env)
		if err != nil {
			return fmt.Errorf("%w: failed to load glycoenv", err)
		}

		client, err := grest.NewClient(prof)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create glyco client. Your glycoprofile (%s in %s) can be broken.\n\nRemove it and try `glyco init` again. Ask your admin to get a glycoprofile",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}
		return task(ctx, logger, *e, client, cl, params)
	})
}

// WorkspaceFor resolves the workspace scope from flag values, falling
// back to the glycoenv defaults.
func WorkspaceFor(e env.GlycoEnv, resourceGroup string, workspace string) grest.Workspace {
	ws := grest.Workspace{ResourceGroup: resourceGroup, Name: workspace}
	if ws.ResourceGroup == "" {
		ws.ResourceGroup = e.ResourceGroup
	}
	if ws.Name == "" {
		ws.Name = e.Workspace
	}
	return ws
}
