package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "sitegen.yaml").
			Build()

		require.Equal(t, CategoryConfig, err.Category())
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		require.Equal(t, "sitegen.yaml", file)
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		require.True(t, IsClassified(err))
		require.True(t, HasCategory(err, CategoryConfig))
		require.True(t, err.IsFatal())
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := FileSystemError("write failed").Build()
		wrapped := fmt.Errorf("render home: %w", inner)

		require.True(t, IsClassified(wrapped))
		require.Equal(t, CategoryFileSystem, GetCategory(wrapped))
		require.Equal(t, SeverityFatal, GetSeverity(wrapped))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		plain := errors.New("plain")
		require.False(t, IsClassified(plain))
		require.Equal(t, CategoryInternal, GetCategory(plain))
		require.Equal(t, SeverityError, GetSeverity(plain))
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("original error")
	err := WrapError(originalErr, CategoryContent, "read content file").
		Warning().
		WithContext("path", "posts/a.md").
		Build()

	require.Equal(t, SeverityWarning, err.Severity())
	require.ErrorIs(t, err, originalErr)
	require.Equal(t, originalErr, err.Cause())
	require.Equal(t, "[content:warning] read content file: original error", err.Error())

	again := err.WithContext("line", 3)
	_, hadLine := err.Context().Get("line")
	require.False(t, hadLine, "WithContext must not mutate the receiver")
	v, ok := again.Context().Get("line")
	require.True(t, ok)
	require.Equal(t, 3, v)
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"content", ContentError("content file skipped"), CategoryContent, SeverityWarning},
		{"template", TemplateError("failed to render page"), CategoryTemplate, SeverityFatal},
		{"filesystem", FileSystemError("failed to write output file"), CategoryFileSystem, SeverityFatal},
		{"config", ConfigError("configuration file not found"), CategoryConfig, SeverityFatal},
		{"validation", ValidationError("bad value"), CategoryValidation, SeverityFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.WithCause(cause).Build()
			require.Equal(t, tt.category, err.Category())
			require.Equal(t, tt.severity, err.Severity())
			require.ErrorIs(t, err, cause)
		})
	}
}

func TestClassifiedError_Is(t *testing.T) {
	a := TemplateError("template not found").Build()
	b := TemplateError("template not found").WithContext("template", "main").Build()
	c := ConfigError("template not found").Build()

	require.ErrorIs(t, b, a)
	require.NotErrorIs(t, c, a)
}
