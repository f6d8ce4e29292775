package log

import (
	"os"
	"strings"

	"github.com/YuminosukeSato/corefit/pkg/errors"
)

// SetupLogger builds the process logger: zerolog JSON on stderr at the given
// level. Warnings raised through errors.Warn are routed into it.
func SetupLogger(loglevel string) (Logger, error) {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return nil, err
	}
	logger := NewZerologLogger(os.Stderr, level)
	RouteWarnings(logger)
	return logger, nil
}

// RouteWarnings makes errors.Warn log through logger at warn level.
func RouteWarnings(logger Logger) {
	errors.SetZerologWarnFunc(func(w error) {
		logger.Warn("warning raised", WarningKey, w)
	})
}

// ParseLevel converts a textual level ("debug", "info", "warn", "error") to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info", "":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}

// ErrorCode maps err to one of the Error* codes for the ErrorCodeKey field.
// Errors of no known type map to ErrorUnknown.
func ErrorCode(err error) string {
	var (
		notFitted  *errors.NotFittedError
		dimension  *errors.DimensionError
		malformed  *errors.MalformedInputError
		singular   *errors.SingularSystemError
		numerical  *errors.NumericalInstabilityError
		validation *errors.ValidationError
	)
	switch {
	case errors.As(err, &singular), errors.Is(err, errors.ErrSingularMatrix):
		return ErrorSingularMatrix
	case errors.As(err, &numerical):
		return ErrorNumerical
	case errors.As(err, &malformed):
		return ErrorMalformedInput
	case errors.As(err, &dimension):
		return ErrorDimensionMismatch
	case errors.As(err, &notFitted):
		return ErrorNotFitted
	case errors.Is(err, errors.ErrEmptyData):
		return ErrorEmptyData
	case errors.As(err, &validation):
		return ErrorInvalidInput
	default:
		return ErrorUnknown
	}
}
