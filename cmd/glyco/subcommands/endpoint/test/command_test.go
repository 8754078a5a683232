package test_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/youta-t/flarc"

	"github.com/glyco-ml/glyco/cmd/glyco/env"
	"github.com/glyco-ml/glyco/cmd/glyco/rest"
	"github.com/glyco-ml/glyco/cmd/glyco/rest/mock"
	endpoint_test "github.com/glyco-ml/glyco/cmd/glyco/subcommands/endpoint/test"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/internal/commandline"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/logger"
	"github.com/glyco-ml/glyco/pkg/api/types/inference"
	"github.com/glyco-ml/glyco/pkg/dataset"
)

func writeSample(t *testing.T, rows int) string {
	t.Helper()
	sb := new(strings.Builder)
	sb.WriteString(strings.Join(dataset.FeatureColumns, ",") + "\n")
	samples := []string{
		"2,180,74,24,21,23.9,1.488,22",
		"0,148,58,11,179,39.2,0.160,45",
		"9,104,51,7,24,27.4,0.142,66",
	}
	for i := 0; i < rows; i++ {
		sb.WriteString(samples[i%len(samples)] + "\n")
	}
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEndpointTestCommand(t *testing.T) {
	glycoEnv := env.GlycoEnv{
		ResourceGroup: "rg-glyco-dev-abc123",
		Workspace:     "mlw-glyco-dev-abc123",
	}

	newCommandline := func(flags endpoint_test.Flags, stdout io.Writer) commandline.MockCommandline[endpoint_test.Flags] {
		return commandline.MockCommandline[endpoint_test.Flags]{
			Fullname_: "glyco endpoint test",
			Stdout_:   stdout,
			Stderr_:   io.Discard,
			Flags_:    flags,
			Args_:     map[string][]string{},
		}
	}

	t.Run("it sends the sample rows and prints one diagnosis per row", func(t *testing.T) {
		testData := writeSample(t, 3)

		client := mock.New(t)
		client.Impl.Score = func(
			_ context.Context, ws rest.Workspace, endpoint string, req inference.ScoreRequest,
		) (inference.ScoreResponse, error) {
			if ws.Name != glycoEnv.Workspace || ws.ResourceGroup != glycoEnv.ResourceGroup {
				t.Errorf("unexpected workspace: %+v", ws)
			}
			if endpoint != "diabetes-ep" {
				t.Errorf("unexpected endpoint: %s", endpoint)
			}
			if len(req.InputData.Data) != 3 {
				t.Errorf("unexpected row count: %d", len(req.InputData.Data))
			}
			return inference.ScoreResponse{Predictions: []int{1, 0, 0}}, nil
		}

		stdout := new(bytes.Buffer)
		cl := newCommandline(endpoint_test.Flags{
			EndpointName: "diabetes-ep",
			TestData:     testData,
		}, stdout)

		err := endpoint_test.Task()(
			context.Background(), logger.Null(), glycoEnv, client, cl, nil,
		)
		if err != nil {
			t.Fatal(err)
		}

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("unexpected output: %q", stdout.String())
		}
		if !strings.Contains(lines[0], "diabetic (1)") || strings.Contains(lines[0], "not-") {
			t.Errorf("unexpected first line: %s", lines[0])
		}
		if !strings.Contains(lines[1], "not-diabetic (0)") {
			t.Errorf("unexpected second line: %s", lines[1])
		}
	})

	t.Run("--rows caps how many rows are sent", func(t *testing.T) {
		testData := writeSample(t, 3)

		client := mock.New(t)
		client.Impl.Score = func(
			_ context.Context, _ rest.Workspace, _ string, req inference.ScoreRequest,
		) (inference.ScoreResponse, error) {
			if len(req.InputData.Data) != 2 {
				t.Errorf("unexpected row count: %d", len(req.InputData.Data))
			}
			return inference.ScoreResponse{Predictions: []int{1, 0}}, nil
		}

		cl := newCommandline(endpoint_test.Flags{
			EndpointName: "diabetes-ep",
			TestData:     testData,
			Rows:         2,
		}, io.Discard)

		if err := endpoint_test.Task()(
			context.Background(), logger.Null(), glycoEnv, client, cl, nil,
		); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("a scoring error from the client is propagated", func(t *testing.T) {
		testData := writeSample(t, 1)

		wantErr := errors.New("fake remote failure")
		client := mock.New(t)
		client.Impl.Score = func(
			context.Context, rest.Workspace, string, inference.ScoreRequest,
		) (inference.ScoreResponse, error) {
			return inference.ScoreResponse{}, wantErr
		}

		cl := newCommandline(endpoint_test.Flags{
			EndpointName: "diabetes-ep",
			TestData:     testData,
		}, io.Discard)

		err := endpoint_test.Task()(
			context.Background(), logger.Null(), glycoEnv, client, cl, nil,
		)
		if !errors.Is(err, wantErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("a missing --endpoint-name is a usage error", func(t *testing.T) {
		cl := newCommandline(endpoint_test.Flags{TestData: "x.csv"}, io.Discard)

		err := endpoint_test.Task()(
			context.Background(), logger.Null(), glycoEnv, mock.New(t), cl, nil,
		)
		if !errors.Is(err, flarc.ErrUsage) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("a missing test data file fails with the loader's error kind", func(t *testing.T) {
		cl := newCommandline(endpoint_test.Flags{
			EndpointName: "diabetes-ep",
			TestData:     filepath.Join(t.TempDir(), "nowhere.csv"),
		}, io.Discard)

		err := endpoint_test.Task()(
			context.Background(), logger.Null(), glycoEnv, mock.New(t), cl, nil,
		)
		if !errors.Is(err, dataset.ErrMissingPath) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
