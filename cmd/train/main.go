// Command train fits a linear model to a CSV dataset by gradient descent
// and saves it for predict.
//
//	train <dataset_path> [-o model.csv] [-i 10000] [-l 0.01] [--plot] [--precision]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/YuminosukeSato/linreg/dataset"
	"github.com/YuminosukeSato/linreg/internal/cli"
	"github.com/YuminosukeSato/linreg/linear"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"github.com/YuminosukeSato/linreg/plot"
)

type options struct {
	datasetPath     string
	outputModelPath string
	plotPath        string
	iterations      int
	learningRate    float64
	plot            bool
	precision       bool
	saveNormalized  bool
	log             cli.LogConfig
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := cli.NewFlagSet("train", "<dataset_path> [flags]", stderr)
	fs.StringVar(&o.outputModelPath, "output-model-path", "linear_model.csv", "output model path")
	fs.StringVar(&o.outputModelPath, "o", "linear_model.csv", "shorthand for --output-model-path")
	fs.StringVar(&o.plotPath, "plot-path", "plot.png", "plot path; the extension selects the image format")
	fs.IntVar(&o.iterations, "iterations", 10000, "number of iterations (> 0)")
	fs.IntVar(&o.iterations, "i", 10000, "shorthand for --iterations")
	fs.Float64Var(&o.learningRate, "learning-rate", 0.01, "learning rate")
	fs.Float64Var(&o.learningRate, "l", 0.01, "shorthand for --learning-rate")
	fs.BoolVar(&o.plot, "plot", false, "plot the dataset and the model")
	fs.BoolVar(&o.precision, "precision", false, "print the mean absolute percentage error")
	fs.BoolVar(&o.saveNormalized, "save-normalized", false,
		"save the coefficients fitted on normalized data instead of the original scale")
	o.log.Register(fs)

	positional, err := cli.Parse(fs, args)
	if err != nil {
		return nil, err
	}
	if len(positional) != 1 {
		fs.Usage()
		return nil, cli.Usagef("expected 1 argument <dataset_path>, got %d", len(positional))
	}
	o.datasetPath = positional[0]

	if err := cli.ValidateIterations(o.iterations); err != nil {
		return nil, err
	}
	if err := cli.ValidateLearningRate(o.learningRate); err != nil {
		return nil, err
	}
	return &o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if err := o.log.Setup(stderr); err != nil {
		return err
	}

	d, err := dataset.Load(o.datasetPath)
	if err != nil {
		return err
	}
	if err := d.Normalize(); err != nil {
		return err
	}

	m := linear.New(o.learningRate)
	if err := m.Train(d, o.iterations); err != nil {
		return err
	}
	if o.saveNormalized {
		if err := m.Save(o.outputModelPath); err != nil {
			return err
		}
	}

	m, err = m.Denormalize(d)
	if err != nil {
		return err
	}
	if err := d.Denormalize(); err != nil {
		return err
	}
	if !o.saveNormalized {
		if err := m.Save(o.outputModelPath); err != nil {
			return err
		}
	}

	if score, err := m.Score(d); err == nil {
		log.GetLogger().Info("Model trained",
			log.OperationKey, log.OperationScore,
			log.PathKey, o.outputModelPath,
			log.R2ScoreKey, score,
		)
	}

	fmt.Fprintln(stdout, m)
	if o.plot {
		if err := plot.LinearModel(m, d, o.plotPath); err != nil {
			return err
		}
	}
	if o.precision {
		mape, err := m.MeanAbsolutePercentageError(d)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Mean Absolute Percentage Error: %.2f%%\n", mape*100)
	}
	return nil
}

func main() {
	os.Exit(cli.Exit(run(os.Args[1:], os.Stdout, os.Stderr), os.Stderr))
}
