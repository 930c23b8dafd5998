package platformerrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeValidation      ErrorType = "VALIDATION"
	ErrorTypeConflict        ErrorType = "CONFLICT"
	ErrorTypeAmbiguous       ErrorType = "AMBIGUOUS"
	ErrorTypeFilterExhausted ErrorType = "FILTER_EXHAUSTED"
	ErrorTypeInternal        ErrorType = "INTERNAL"
)

// Layer represents the application layer where the error occurred
type Layer string

const (
	LayerCatalog  Layer = "catalog"
	LayerFilter   Layer = "filter"
	LayerSnapshot Layer = "snapshot"
	LayerEngine   Layer = "engine"
	LayerQuery    Layer = "query"
	LayerConfig   Layer = "config"
)

// Stage identifies the build pipeline stage an error was raised from.
// Empty outside the engine.
type Stage string

const (
	StageCollect        Stage = "collect"
	StageNormalize      Stage = "normalize"
	StageValidate       Stage = "validate"
	StageEnrich         Stage = "enrich"
	StageCompileFilters Stage = "compile_filters"
	StageApplyFilters   Stage = "apply_filters"
	StageIndex          Stage = "index"
)

// PlatformError represents an error with context and metadata
type PlatformError struct {
	UUID      string
	Type      ErrorType
	Message   string
	Err       error
	Context   map[string]any
	Layer     Layer
	Stage     Stage
	Timestamp time.Time
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	scope := string(e.Layer)
	if e.Stage != "" {
		scope = fmt.Sprintf("%s/%s", e.Layer, e.Stage)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", scope, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", scope, e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the error type
func (e *PlatformError) GetErrorType() ErrorType {
	return e.Type
}

// WithStage tags the error with the pipeline stage it was raised from.
func (e *PlatformError) WithStage(stage Stage) *PlatformError {
	e.Stage = stage
	return e
}

// WithContext attaches a diagnostic field to the error.
func (e *PlatformError) WithContext(key string, value any) *PlatformError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewError creates a new PlatformError with the specified parameters
func NewError(layer Layer, errorType ErrorType, message string, err error) *PlatformError {
	return &PlatformError{
		UUID:      uuid.NewString(),
		Type:      errorType,
		Message:   message,
		Err:       err,
		Layer:     layer,
		Timestamp: time.Now().UTC(),
	}
}

// AsError wraps an error with layer context. An existing PlatformError keeps
// its type, stage and UUID so classification survives wrapping.
func AsError(layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		wrapped := NewError(layer, platformErr.Type, fmt.Sprintf("%s: %s", message, platformErr.Message), platformErr)
		wrapped.UUID = platformErr.UUID
		wrapped.Stage = platformErr.Stage
		return wrapped
	}

	return NewError(layer, ErrorTypeInternal, message, err)
}

// IsErrorType checks if an error is a PlatformError with the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Type == errorType
	}

	return false
}

// GetStage returns the pipeline stage recorded on the error, if any.
func GetStage(err error) Stage {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Stage
	}
	return ""
}

// LogError logs a platform error with proper structure
func LogError(logger zerolog.Logger, err *PlatformError) {
	if err == nil {
		return
	}

	event := logger.Error().
		Str("error_uuid", err.UUID).
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer)).
		Time("timestamp_utc", err.Timestamp)

	if err.Stage != "" {
		event = event.Str("stage", string(err.Stage))
	}

	for k, v := range err.Context {
		event = event.Interface(k, v)
	}

	if err.Err != nil {
		event = event.Err(err.Err)
	}

	event.Msg(err.Message)
}
