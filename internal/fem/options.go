package fem

import "log/slog"

const (
	// ForceScale converts input forces (kN) to solver units (N)
	ForceScale = 1000.0

	// DefaultPenaltyFactor multiplies EI to obtain the support penalty stiffness.
	// Larger values enforce supports more exactly at the cost of conditioning.
	DefaultPenaltyFactor = 1e18

	// DefaultInfluenceStations is the number of intervals swept by the unit load
	DefaultInfluenceStations = 30
)

type options struct {
	penaltyFactor float64
	stations      int
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		penaltyFactor: DefaultPenaltyFactor,
		stations:      DefaultInfluenceStations,
		logger:        slog.New(slog.DiscardHandler),
	}
}

// Option customizes an analysis
type Option func(*options)

// WithPenaltyFactor sets K in penalty = K·EI. Non-positive values are ignored.
func WithPenaltyFactor(k float64) Option {
	return func(o *options) {
		if k > 0 {
			o.penaltyFactor = k
		}
	}
}

// WithInfluenceStations sets the number of intervals for influence lines
// (stations = intervals + 1). Non-positive values are ignored.
func WithInfluenceStations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.stations = n
		}
	}
}

// WithLogger routes solver diagnostics to l
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
