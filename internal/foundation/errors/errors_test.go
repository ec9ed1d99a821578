package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "policygen.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "policygen.yaml" {
			t.Errorf("expected context file=policygen.yaml, got %v", file)
		}
		if err.Error() != "[config:fatal] invalid configuration" {
			t.Errorf("unexpected Error(): %s", err.Error())
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := ValidationError("bad settings").Build()
		wrapped := fmt.Errorf("handler: %w", inner)

		if !IsClassified(wrapped) {
			t.Fatal("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryValidation) {
			t.Error("expected validation category through wrap")
		}
		if GetCategory(stderrors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified errors to report internal")
		}
	})

	t.Run("WithContext does not mutate original", func(t *testing.T) {
		base := RenderError("render failed").WithContext("format", "html").Build()
		derived := base.WithContext("section", "cookies")

		if _, ok := base.Context().Get("section"); ok {
			t.Error("original context was mutated")
		}
		if v, _ := derived.Context().GetString("format"); v != "html" {
			t.Errorf("derived lost inherited context, got %q", v)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Wrap keeps cause", func(t *testing.T) {
		cause := stderrors.New("disk full")
		err := WrapError(cause, CategoryStorage, "append failed").Retryable().Build()

		if !stderrors.Is(err, cause) {
			t.Error("expected error to wrap cause")
		}
		if !err.CanRetry() {
			t.Error("expected backoff retry to be retryable")
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("x"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("x"), CategoryValidation, SeverityError, RetryUserAction},
			{"NotFoundError", NotFoundError("x"), CategoryNotFound, SeverityError, RetryNever},
			{"RenderError", RenderError("x"), CategoryRender, SeverityError, RetryNever},
			{"FileSystemError", FileSystemError("x"), CategoryFileSystem, SeverityError, RetryNever},
			{"StorageError", StorageError("x"), CategoryStorage, SeverityError, RetryBackoff},
			{"MessagingError", MessagingError("x"), CategoryMessaging, SeverityWarning, RetryBackoff},
			{"RuntimeError", RuntimeError("x"), CategoryRuntime, SeverityFatal, RetryNever},
			{"InternalError", InternalError("x"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	b := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := a.Merge(b)

	if v, _ := merged.GetString("key1"); v != "value1" {
		t.Errorf("expected key1=value1, got %s", v)
	}
	if v, _ := merged.GetString("key2"); v != "value2" {
		t.Errorf("expected key2=value2, got %s", v)
	}
	if v, _ := merged.GetString("shared"); v != "overridden" {
		t.Errorf("expected shared=overridden, got %s", v)
	}
}
