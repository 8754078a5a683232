package list

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/youta-t/flarc"

	"github.com/glyco-ml/glyco/cmd/glyco/env"
	"github.com/glyco-ml/glyco/cmd/glyco/rest"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	"github.com/glyco-ml/glyco/pkg/api/types/endpoints"
	"github.com/glyco-ml/glyco/pkg/api/types/models"
)

type Flags struct {
	ResourceGroup string `flag:"resource-group" help:"resource group of the workspace. Default: glycoenv."`
	WorkspaceName string `flag:"workspace-name" help:"workspace to inspect. Default: glycoenv."`
}

// Inventory is the listing printed to stdout.
type Inventory struct {
	Endpoints []endpoints.Summary `json:"endpoints"`
	Models    []models.Summary    `json:"models"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"list online endpoints and registered models in a workspace.",
		Flags{},
		flarc.Args{},
		common.NewTask(Task()),
	)
}

func Task() common.Task[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		glycoEnv env.GlycoEnv,
		client rest.GlycoClient,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		flags := cl.Flags()
		ws := common.WorkspaceFor(glycoEnv, flags.ResourceGroup, flags.WorkspaceName)
		if ws.ResourceGroup == "" || ws.Name == "" {
			return fmt.Errorf(
				"%w: workspace is not identified. Pass --resource-group and --workspace-name or set them in glycoenv",
				flarc.ErrUsage,
			)
		}

		eps, err := client.ListEndpoints(ctx, ws)
		if err != nil {
			return err
		}
		mods, err := client.ListModels(ctx, ws)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		return enc.Encode(Inventory{Endpoints: eps, Models: mods})
	}
}
