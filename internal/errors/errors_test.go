package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "file access error type", errType: ErrTypeFileAccess, expected: "FILE_ACCESS"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "render error type", errType: ErrTypeRender, expected: "RENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewValidationError("delimiter must be a single character"),
			wantMessage: "[VALIDATION] delimiter must be a single character",
		},
		{
			name:        "error with cause",
			appError:    NewFileAccessError("failed to open input file", fs.ErrNotExist),
			wantMessage: "[FILE_ACCESS] failed to open input file: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewFileAccessError("failed to open input file", fs.ErrNotExist)

	assert.True(t, errors.Is(err, fs.ErrNotExist))

	wrapped := fmt.Errorf("load: %w", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeFileAccess, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("missing required column", nil).
		WithContext("column", "Capacidad").
		WithContext("source", "meta_FNCER.csv")

	assert.Equal(t, "Capacidad", err.Context["column"])
	assert.Equal(t, "meta_FNCER.csv", err.Context["source"])

	bare := &AppError{Type: ErrTypeRender}
	bare.WithContext("chart", "bar")
	assert.Equal(t, "bar", bare.Context["chart"])
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: ""},
		{name: "direct app error", err: NewConfigError("bad yaml", nil), want: ErrTypeConfig},
		{name: "wrapped app error", err: fmt.Errorf("render: %w", NewRenderError("write failed", nil)), want: ErrTypeRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
			if tt.want != "" {
				assert.True(t, IsType(tt.err, tt.want))
			}
		})
	}
	assert.False(t, IsType(nil, ErrTypeConfig))
}
