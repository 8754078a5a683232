package train

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/youta-t/flarc"

	"github.com/glyco-ml/glyco/cmd/glyco/env"
	"github.com/glyco-ml/glyco/cmd/glyco/subcommands/common"
	"github.com/glyco-ml/glyco/pkg/dataset"
	"github.com/glyco-ml/glyco/pkg/model"
	"github.com/glyco-ml/glyco/pkg/tracking"
)

type Flags struct {
	TrainingData string  `flag:"training-data" metavar:"DIR" help:"directory holding the training CSV files"`
	RegRate      float64 `flag:"reg-rate" help:"L2 regularization rate. 0 means the glycoenv default (or 0.01)."`
	Epochs       int     `flag:"epochs" help:"gradient descent epochs"`
	Seed         int64   `flag:"seed" help:"seed for the train/test shuffle"`
	TestRatio    float64 `flag:"test-ratio" help:"fraction of rows held out for evaluation"`
	Runs         string  `flag:"runs" metavar:"DIR" help:"root directory of the local run store"`
}

const defaultRegRate = 0.01

type Command struct {
	progressOut io.Writer
}

type Option func(*Command) *Command

func WithProgressOut(w io.Writer) Option {
	return func(c *Command) *Command {
		c.progressOut = w
		return c
	}
}

func New(opt ...Option) (flarc.Command, error) {
	c := &Command{
		progressOut: os.Stderr,
	}
	for _, o := range opt {
		c = o(c)
	}

	return flarc.NewCommand(
		"train the diabetes classifier and track the run locally.",
		Flags{
			RegRate:   0,
			Epochs:    model.DefaultEpochs,
			Seed:      0,
			TestRatio: dataset.DefaultTestRatio,
			Runs:      "./runs",
		},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task(c.progressOut)),
		flarc.WithDescription(`
Load every CSV file in --training-data, hold out an evaluation subset,
fit a logistic regression with the given --reg-rate and record the run
(params, accuracy, AUC and the model artifact) under --runs.

The same --seed always yields the same train/evaluation partition.

Example:

    {{ .Command }} --training-data ./data --reg-rate 0.01
`),
	)
}

func Task(progressOut io.Writer) common.GlycoTaskWithCommonFlag[Flags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag common.CommonFlags,
		cl flarc.Commandline[Flags],
		params []any,
	) error {
		return runTrain(ctx, logger, commonFlag, cl, progressOut)
	}
}

func runTrain(
	ctx context.Context,
	logger *log.Logger,
	commonFlag common.CommonFlags,
	cl flarc.Commandline[Flags],
	progressOut io.Writer,
) error {
	flags := cl.Flags()
	if flags.TrainingData == "" {
		return fmt.Errorf("%w: --training-data is required", flarc.ErrUsage)
	}

	glycoEnv, err := env.LoadGlycoEnv(commonFlag.Env)
	if err != nil {
		return err
	}

	regRate := flags.RegRate
	if regRate == 0 {
		regRate, err = strconv.ParseFloat(
			glycoEnv.Param("reg_rate", strconv.FormatFloat(defaultRegRate, 'f', -1, 64)), 64,
		)
		if err != nil {
			return fmt.Errorf("glycoenv param reg_rate is not a number: %w", err)
		}
	}

	table, err := dataset.LoadDir(flags.TrainingData)
	if err != nil {
		return err
	}
	logger.Printf("loaded %d rows from %s", table.Len(), flags.TrainingData)

	x, y, err := table.FeaturesLabel()
	if err != nil {
		return err
	}
	split, err := dataset.TrainTestSplit(x, y, flags.TestRatio, flags.Seed)
	if err != nil {
		if errors.Is(err, dataset.ErrBadTestRatio) {
			return errors.Join(flarc.ErrUsage, fmt.Errorf("--test-ratio: %w", err))
		}
		return err
	}

	experiment := glycoEnv.Experiment
	if experiment == "" {
		experiment = "default"
	}
	store := tracking.NewStore(flags.Runs)
	run, err := store.NewRun(experiment)
	if err != nil {
		return err
	}
	run.LogParam("reg_rate", strconv.FormatFloat(regRate, 'f', -1, 64))
	run.LogParam("epochs", strconv.Itoa(flags.Epochs))
	run.LogParam("seed", strconv.FormatInt(flags.Seed, 10))
	run.LogParam("test_ratio", strconv.FormatFloat(flags.TestRatio, 'f', -1, 64))

	bar := pb.New(flags.Epochs).SetWriter(progressOut)
	bar.Start()
	m, err := model.Fit(
		dataset.FeatureColumns, split.XTrain, split.YTrain, regRate,
		model.WithEpochs(flags.Epochs),
		model.WithEpochCallback(func(done, total int) {
			bar.SetCurrent(int64(done))
		}),
	)
	bar.Finish()
	if err != nil {
		return errors.Join(err, run.Finish(tracking.StatusFailed))
	}

	pred, err := m.Predict(split.XTest)
	if err != nil {
		return errors.Join(err, run.Finish(tracking.StatusFailed))
	}
	proba, err := m.PredictProba(split.XTest)
	if err != nil {
		return errors.Join(err, run.Finish(tracking.StatusFailed))
	}

	accuracy := model.Accuracy(split.YTest, pred)
	auc := model.AUC(split.YTest, proba)
	run.LogMetric("accuracy", accuracy)
	run.LogMetric("auc", auc)

	if err := run.SaveModel(model.Artifact{Model: *m, TrainedAt: time.Now()}); err != nil {
		return errors.Join(err, run.Finish(tracking.StatusFailed))
	}
	if err := run.Finish(tracking.StatusDone); err != nil {
		return err
	}

	logger.Printf("run %s: accuracy=%.4f auc=%.4f", run.Id(), accuracy, auc)

	enc := json.NewEncoder(cl.Stdout())
	enc.SetIndent("", "    ")
	return enc.Encode(Result{
		RunId:    run.Id(),
		Artifact: run.ArtifactPath(),
		Metrics:  map[string]float64{"accuracy": accuracy, "auc": auc},
	})
}

// Result is what the command prints on success.
type Result struct {
	RunId    string             `json:"runId"`
	Artifact string             `json:"artifact"`
	Metrics  map[string]float64 `json:"metrics"`
}
