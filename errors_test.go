package gemmbench

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		wantOp   string
		wantMsg  string
		checkFn  func(error) bool
	}{
		{
			name:     "Invalid Size",
			err:      ErrInvalidSize,
			wantType: ErrTypeInvalidArg,
			wantOp:   "NewMatrix",
			wantMsg:  "size must be positive",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Invalid Block",
			err:      ErrInvalidBlock,
			wantType: ErrTypeInvalidArg,
			wantOp:   "Blocked",
			wantMsg:  "block size must be positive",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Size Mismatch",
			err:      ErrSizeMismatch,
			wantType: ErrTypeDimension,
			wantOp:   "Multiply",
			wantMsg:  "matrices must share the same order",
			checkFn:  IsDimensionError,
		},
		{
			name:     "Execution",
			err:      NewExecutionError("Run", "naive multiplication failed", ErrSizeMismatch),
			wantType: ErrTypeExecution,
			wantOp:   "Run",
			wantMsg:  "naive multiplication failed",
			checkFn:  IsExecutionError,
		},
		{
			name:     "Numerical",
			err:      NewNumericalError("Verify", "NaN in product", 3),
			wantType: ErrTypeNumerical,
			wantOp:   "Verify",
			wantMsg:  "NaN in product",
			checkFn:  IsNumericalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *Error
			require.True(t, errors.As(tt.err, &e))
			assert.Equal(t, tt.wantType, e.Type)
			assert.Equal(t, tt.wantOp, e.Op)
			assert.Equal(t, tt.wantMsg, e.Message)
			assert.True(t, tt.checkFn(tt.err))
			assert.Contains(t, tt.err.Error(), tt.wantType.String())
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	err := NewExecutionError("Run", "blocked multiplication failed", ErrInvalidBlock)
	assert.ErrorIs(t, err, ErrInvalidBlock)
	assert.Contains(t, err.Error(), "caused by")

	// Predicates see through fmt wrapping and nested structured errors
	wrapped := fmt.Errorf("benchmark: %w", err)
	assert.True(t, IsExecutionError(wrapped))
	assert.True(t, IsInvalidArgError(wrapped))
	assert.False(t, IsDimensionError(wrapped))
	assert.False(t, IsNumericalError(errors.New("plain")))
	assert.False(t, IsInvalidArgError(nil))
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "InvalidArgument", ErrTypeInvalidArg.String())
	assert.Equal(t, "Dimension", ErrTypeDimension.String())
	assert.Equal(t, "Execution", ErrTypeExecution.String())
	assert.Equal(t, "Numerical", ErrTypeNumerical.String())
	assert.Equal(t, "Unknown", ErrorType(42).String())
}
