// Package linreg fits a univariate linear model y = a·x + b to a CSV dataset
// by batch gradient descent and predicts y for new x.
//
// Both columns are min-max normalized before training. The coefficients
// learned on normalized data are then mapped back to the original scale, so
// the saved model can be applied to raw x values.
//
// # Installation
//
//	go install github.com/YuminosukeSato/linreg/cmd/train@latest
//	go install github.com/YuminosukeSato/linreg/cmd/predict@latest
//
// # Quick Start
//
//	$ cat data.csv
//	x,y
//	1,3
//	2,5
//	3,7
//	4,9
//	$ train data.csv -i 5000 -l 0.1 --precision --plot
//	LinearModel { a: 1.9999999..., b: 1.0000000..., learning_rate: 0.1 }
//	Mean Absolute Percentage Error: 0.00%
//	$ predict 5 linear_model.csv
//	Estimate value for 5 (x): 11 (y)
//
// From Go:
//
//	d, err := dataset.Load("data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := d.Normalize(); err != nil {
//	    log.Fatal(err)
//	}
//
//	m := linear.New(0.1)
//	if err := m.Train(d, 10000); err != nil {
//	    log.Fatal(err)
//	}
//	m, err = m.Denormalize(d)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.Estimate(5))
//
// # Packages
//
//   - dataset: paired (x, y) columns, CSV loading, normalization
//   - preprocessing: min-max scaling and its inverse
//   - linear: LinearModel, gradient descent, persistence
//   - metrics: Evaluation metrics (MSE, RMSE, MAE, R², MAPE)
//   - plot: data points and regression line with gonum/plot
//   - core/model: fitted-state base type and CSV record persistence
//   - pkg/errors: structured errors on cockroachdb/errors
//   - pkg/log: Logger interface with zerolog and log/slog backends
//
// # File Formats
//
// A dataset is a CSV file with a header and two numeric columns, x then y.
// A model is a CSV file with the header a,b,learning_rate and one record.
package linreg
