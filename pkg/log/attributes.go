// Package log defines standard attribute keys for fitting operations.
//
// Using these keys keeps log lines from the solver, the estimators and the
// runner filterable by the same names. Keys follow a hierarchical naming
// convention (e.g., "fit.method", "data.samples").

package log

// Component and Operation Context
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "LeastSquares", "Interpolator"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "parse", "report", "plot"
	OperationKey = "op"

	// ComponentKey identifies which package is logging.
	// Examples: "runner", "readings", "polyfit"
	ComponentKey = "component"
)

// Fit Configuration
const (
	// MethodKey is the fitting strategy, "interpolation" or "least-squares".
	MethodKey = "fit.method"

	// DegreeKey is the requested polynomial degree.
	DegreeKey = "fit.degree"

	// PivotingKey names the pivot selection policy ("raw" or "magnitude").
	PivotingKey = "fit.pivoting"

	// StrictKey reports whether singular systems fail fast.
	StrictKey = "fit.strict"

	// SegmentsKey is the number of fitted polynomial pieces.
	SegmentsKey = "fit.segments"

	// SampleRateKey is the spacing between consecutive samples in seconds.
	SampleRateKey = "fit.sample_rate"
)

// Data Shape
const (
	// SamplesKey is the number of samples in a channel.
	SamplesKey = "data.samples"

	// ChannelKey is the zero-based channel (core) index.
	ChannelKey = "data.channel"

	// ChannelsKey is the number of channels read from an input file.
	ChannelsKey = "data.channels"
)

// Files
const (
	// InputFileKey is the path of the data file being processed.
	InputFileKey = "io.input"

	// OutputFileKey is the path of a written report or plot.
	OutputFileKey = "io.output"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error and Warning Context
const (
	// ErrAttrKey is the field under which errors are logged.
	ErrAttrKey = "error"

	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "SINGULAR_MATRIX"
	ErrorCodeKey = "error.code"

	// ErrorDetailKey carries the structured fields of a typed error.
	ErrorDetailKey = "error.detail"

	// StacktraceKey contains the stack trace recorded by cockroachdb/errors.
	StacktraceKey = "error.stacktrace"

	// WarningKey is the field under which warnings raised via errors.Warn are logged.
	WarningKey = "warning"
)

// Standard attribute values.
const (
	OperationFit    = "fit"
	OperationParse  = "parse"
	OperationReport = "report"
	OperationPlot   = "plot"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorMalformedInput    = "MALFORMED_INPUT"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
	ErrorUnknown           = "UNKNOWN"
)
