// Command predict loads a model saved by train and prints the estimate for x.
//
//	predict <x_value> <model_path>
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/linreg/internal/cli"
	"github.com/YuminosukeSato/linreg/linear"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

func run(args []string, stdout, stderr io.Writer) error {
	var logConfig cli.LogConfig
	fs := cli.NewFlagSet("predict", "<x_value> <model_path> [flags]\n\nUse -- before a negative x_value.", stderr)
	logConfig.Register(fs)

	positional, err := cli.Parse(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 2 {
		fs.Usage()
		return cli.Usagef("expected 2 arguments <x_value> <model_path>, got %d", len(positional))
	}
	x, err := strconv.ParseFloat(positional[0], 64)
	if err != nil {
		return cli.Usagef("invalid x_value %q: not a number", positional[0])
	}
	if err := logConfig.Setup(stderr); err != nil {
		return err
	}

	m, err := linear.Load(positional[1])
	if err != nil {
		return err
	}
	y := m.Estimate(x)

	log.GetLogger().Debug("Estimated",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PathKey, positional[1],
	)
	fmt.Fprintf(stdout, "Estimate value for %s (x): %s (y)\n", format(x), format(y))
	return nil
}

// format prints v without an exponent, like 11 or 0.25.
func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func main() {
	os.Exit(cli.Exit(run(os.Args[1:], os.Stdout, os.Stderr), os.Stderr))
}
