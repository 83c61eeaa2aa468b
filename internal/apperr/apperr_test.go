package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOfWrappedErrors(t *testing.T) {
	notFound := New(NotFound, "table not found")
	wrapped := fmt.Errorf("settle table t-1: %w", notFound)

	if got := KindOf(wrapped); got != NotFound {
		t.Errorf("Expected NotFound, got %s", got)
	}
	if !errors.Is(wrapped, notFound) {
		t.Error("Expected errors.Is to match the sentinel")
	}
	if KindOf(errors.New("boom")) != Internal {
		t.Error("Plain errors should classify as Internal")
	}
	if Is(nil, Internal) {
		t.Error("nil must not match any kind")
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage("save tables", cause)

	if err.Kind != StorageFailure {
		t.Errorf("Expected StorageFailure, got %s", err.Kind)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected cause to be reachable through Unwrap")
	}
	if err.Error() != "save tables: disk full" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
