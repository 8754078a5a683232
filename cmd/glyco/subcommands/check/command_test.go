package check_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	subcheck "github.com/glyco-ml/glyco/cmd/glyco/subcommands/check"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/internal/commandline"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/logger"
	"github.com/glyco-ml/glyco/pkg/check"
	"github.com/glyco-ml/glyco/pkg/dataset"
)

// a workspace with a glycoenv, a pipeline file and a small dataset.
func setupWorkspace(t *testing.T, lint string, unit string) (envfile string, flags subcheck.Flags) {
	t.Helper()
	dir := t.TempDir()

	envfile = filepath.Join(dir, "glycoenv")
	content := fmt.Sprintf("experiment: e\nparams:\n  lint: %q\n  unit: %q\n", lint, unit)
	if err := os.WriteFile(envfile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	pipelineFile := filepath.Join(dir, "glyco.pipeline.yaml")
	if err := os.WriteFile(pipelineFile, []byte("name: ci\nstages: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.Mkdir(dataDir, 0755); err != nil {
		t.Fatal(err)
	}
	sb := new(strings.Builder)
	sb.WriteString(strings.Join(append(dataset.FeatureColumns, dataset.LabelColumn), ",") + "\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(
			sb, "%d,%d,%d,%d,%d,%f,%f,%d,%d\n",
			i%5, 90+20*(i%2)+i, 70+i%10, 20+i%15, 80+i%40,
			22.5+float64(i%7), 0.2+0.01*float64(i%9), 25+i%30, i%2,
		)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "diabetes.csv"), []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}

	return envfile, subcheck.Flags{
		Data:     dataDir,
		Pipeline: pipelineFile,
	}
}

func TestCheckCommand(t *testing.T) {
	newCommandline := func(flags subcheck.Flags, stdout io.Writer) commandline.MockCommandline[subcheck.Flags] {
		return commandline.MockCommandline[subcheck.Flags]{
			Fullname_: "glyco check",
			Stdout_:   stdout,
			Stderr_:   io.Discard,
			Flags_:    flags,
			Args_:     map[string][]string{},
		}
	}

	t.Run("every check passing exits clean", func(t *testing.T) {
		envfile, flags := setupWorkspace(t, "true", "true")

		stdout := new(bytes.Buffer)
		err := subcheck.Task()(
			context.Background(), logger.Null(),
			common.CommonFlags{Env: envfile},
			newCommandline(flags, stdout), nil,
		)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout.String(), "4 passed, 0 failed, 0 skipped") {
			t.Errorf("unexpected tally: %q", stdout.String())
		}
	})

	t.Run("a failing unit check fails the command but others still run", func(t *testing.T) {
		envfile, flags := setupWorkspace(t, "true", "false")

		stdout := new(bytes.Buffer)
		err := subcheck.Task()(
			context.Background(), logger.Null(),
			common.CommonFlags{Env: envfile},
			newCommandline(flags, stdout), nil,
		)
		if !errors.Is(err, check.ErrChecksFailed) {
			t.Errorf("unexpected error: %v", err)
		}
		report := stdout.String()
		if !strings.Contains(report, "FAIL\tunit") {
			t.Errorf("unit failure is not reported: %q", report)
		}
		if !strings.Contains(report, "PASS\tintegration") {
			t.Errorf("integration did not run after the failure: %q", report)
		}
	})

	t.Run("a missing lint tool is warned, not failed", func(t *testing.T) {
		envfile, flags := setupWorkspace(t, "no-such-lint-tool-anywhere", "true")

		stdout := new(bytes.Buffer)
		err := subcheck.Task()(
			context.Background(), logger.Null(),
			common.CommonFlags{Env: envfile},
			newCommandline(flags, stdout), nil,
		)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout.String(), "SKIP\tlint") {
			t.Errorf("lint is not reported skipped: %q", stdout.String())
		}
	})

	t.Run("a missing data directory fails the integration check", func(t *testing.T) {
		envfile, flags := setupWorkspace(t, "true", "true")
		flags.Data = filepath.Join(t.TempDir(), "nowhere")

		stdout := new(bytes.Buffer)
		err := subcheck.Task()(
			context.Background(), logger.Null(),
			common.CommonFlags{Env: envfile},
			newCommandline(flags, stdout), nil,
		)
		if !errors.Is(err, check.ErrChecksFailed) {
			t.Errorf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout.String(), "FAIL\tintegration") {
			t.Errorf("integration failure is not reported: %q", stdout.String())
		}
	})

	t.Run("--only restricts the run to one check", func(t *testing.T) {
		envfile, flags := setupWorkspace(t, "true", "false")
		flags.Only = "files"

		stdout := new(bytes.Buffer)
		err := subcheck.Task()(
			context.Background(), logger.Null(),
			common.CommonFlags{Env: envfile},
			newCommandline(flags, stdout), nil,
		)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout.String(), "1 passed, 0 failed, 0 skipped") {
			t.Errorf("unexpected tally: %q", stdout.String())
		}
	})
}
