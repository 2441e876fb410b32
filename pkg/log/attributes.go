// Package log defines standard attribute keys for training and prediction logs.
//
// Using the same keys everywhere keeps the output of the dataset, model and
// command packages filterable by one set of names. Keys follow a
// hierarchical convention ("model.name", "data.samples").
package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model or transformer.
	// Examples: "LinearModel", "MinMaxScaler", "Dataset"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "load", "normalize", "train", "predict", "save", "plot"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey is the number of (x, y) pairs.
	SamplesKey = "data.samples"

	// PathKey is the file a dataset, model or plot was read from or written to.
	PathKey = "data.path"

	// MinKey and MaxKey are the bounds recorded by min-max normalization.
	MinKey = "data.min"
	MaxKey = "data.max"

	// ColumnKey names a dataset column ("x" or "y").
	ColumnKey = "data.column"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the mean squared error during or after training.
	LossKey = "metrics.loss"

	// MAPEKey records the mean absolute percentage error as a fraction.
	MAPEKey = "metrics.mape"

	// R2ScoreKey records R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records the current iteration number.
	IterationKey = "training.iteration"

	// IterationsKey records the total number of iterations requested.
	IterationsKey = "training.iterations"
)

// Model coefficients and hyperparameters
const (
	// SlopeKey and InterceptKey record the fitted coefficients a and b.
	SlopeKey     = "model.slope"
	InterceptKey = "model.intercept"

	// LearningRateKey records the gradient-descent step size.
	LearningRateKey = "hyperparams.learning_rate"

	// ScaleKey records whether coefficients are in normalized or original units.
	ScaleKey = "model.scale"
)

// Error and Warning Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// WarningKey carries a structured warning object.
	WarningKey = "warning"
)

// Standard attribute values.
const (
	OperationLoad      = "load"
	OperationNormalize = "normalize"
	OperationTrain     = "train"
	OperationPredict   = "predict"
	OperationSave      = "save"
	OperationPlot      = "plot"
	OperationScore     = "score"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
)
