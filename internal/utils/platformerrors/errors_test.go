package platformerrors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewError(LayerCatalog, ErrorTypeValidation, "bad record", nil)

	assert.NotEmpty(t, err.UUID)
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, LayerCatalog, err.Layer)
	assert.False(t, err.Timestamp.IsZero())
	assert.Equal(t, "[catalog][VALIDATION] bad record", err.Error())
}

func TestError_StageInMessage(t *testing.T) {
	err := NewError(LayerEngine, ErrorTypeValidation, "bad record", nil).WithStage(StageNormalize)
	assert.Equal(t, "[engine/normalize][VALIDATION] bad record", err.Error())
}

func TestAsError_PreservesClassification(t *testing.T) {
	inner := NewError(LayerFilter, ErrorTypeFilterExhausted, "nothing visible", nil).WithStage(StageApplyFilters)

	wrapped := AsError(LayerEngine, fmt.Errorf("build: %w", inner), "build failed")

	assert.Equal(t, ErrorTypeFilterExhausted, wrapped.Type)
	assert.Equal(t, StageApplyFilters, wrapped.Stage)
	assert.Equal(t, inner.UUID, wrapped.UUID)
	assert.True(t, IsErrorType(wrapped, ErrorTypeFilterExhausted))
}

func TestAsError_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := AsError(LayerEngine, errors.New("boom"), "source failed")

	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Equal(t, Stage(""), wrapped.Stage)
}

func TestGetStage(t *testing.T) {
	assert.Equal(t, Stage(""), GetStage(errors.New("plain")))

	err := NewError(LayerEngine, ErrorTypeValidation, "x", nil).WithStage(StageCollect)
	assert.Equal(t, StageCollect, GetStage(err))
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	err := NewError(LayerSnapshot, ErrorTypeConflict, "duplicate key", errors.New("cause")).
		WithStage(StageIndex).
		WithContext("key", "openai/gpt-4o")
	LogError(log, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "duplicate key", line["message"])
	assert.Equal(t, "CONFLICT", line["error_type"])
	assert.Equal(t, "snapshot", line["layer"])
	assert.Equal(t, "index", line["stage"])
	assert.Equal(t, "openai/gpt-4o", line["key"])
	assert.Equal(t, err.UUID, line["error_uuid"])
}

func TestLogError_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	LogError(zerolog.New(&buf), nil)
	assert.Empty(t, buf.Bytes())
}
