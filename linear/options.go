package linear

import "github.com/YuminosukeSato/linreg/pkg/log"

const defaultLogInterval = 1000

// Option is a function that configures a LinearModel
type Option func(*LinearModel)

// WithLogger sets the logger used for training progress.
// Without it the model logs through log.GetLogger().
func WithLogger(l log.Logger) Option {
	return func(m *LinearModel) {
		m.logger = l
	}
}

// WithLogInterval sets how many iterations pass between progress records.
// Zero or a negative value disables progress records.
func WithLogInterval(n int) Option {
	return func(m *LinearModel) {
		m.logInterval = n
	}
}
