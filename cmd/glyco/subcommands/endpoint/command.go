package endpoint

import (
	"github.com/youta-t/flarc"

	endpoint_list "github.com/glyco-ml/glyco/cmd/glyco/subcommands/endpoint/list"
	endpoint_test "github.com/glyco-ml/glyco/cmd/glyco/subcommands/endpoint/test"
)

func New() (flarc.Command, error) {
	test, err := endpoint_test.New()
	if err != nil {
		return nil, err
	}
	list, err := endpoint_list.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Inspect and try online scoring endpoints.",
		struct{}{},
		flarc.WithSubcommand("test", test),
		flarc.WithSubcommand("list", list),
	)
}
