package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("weights must sum to 1.0, got %.2f", 1.15)

	assert.Equal(t, "invalid configuration: weights must sum to 1.0, got 1.15", err.Error())

	var cfgErr *ConfigError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &cfgErr)
}

func TestDataShapeError(t *testing.T) {
	err := NewDataShapeError("activity", "sha", 3)

	assert.Equal(t, `activity: record 3 is missing required field "sha"`, err.Error())

	var shapeErr *DataShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "activity", shapeErr.Component)
	assert.Equal(t, "sha", shapeErr.Field)
	assert.Equal(t, 3, shapeErr.Index)
}

func TestErrorTypesAreDistinct(t *testing.T) {
	var cfgErr *ConfigError
	assert.False(t, errors.As(NewDataShapeError("activity", "sha", 0), &cfgErr))

	var shapeErr *DataShapeError
	assert.False(t, errors.As(NewConfigError("bad"), &shapeErr))
}
