package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	apperrors "github.com/miragecorp/mirageos/internal/platform/errors"
)

func TestErrorMatchesByCode(t *testing.T) {
	base := apperrors.New(apperrors.CodeNotFound, "path has no node")
	other := apperrors.New(apperrors.CodeNotFound, "different message")

	if !stderrors.Is(base, other) {
		t.Fatal("expected errors with the same code to match")
	}
	if stderrors.Is(base, apperrors.New(apperrors.CodePermissionDenied, "denied")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk on fire")
	wrapped := apperrors.Wrap(apperrors.CodeStorageUnavailable, "open store", cause)

	if !stderrors.Is(wrapped, cause) {
		t.Fatal("expected wrapped error to unwrap to cause")
	}
	if wrapped.Error() != "open store" {
		t.Fatalf("Error() = %q, want %q", wrapped.Error(), "open store")
	}
}

func TestWrappedDomainErrorMatchesThroughChain(t *testing.T) {
	inner := apperrors.New(apperrors.CodeEncrypted, "file is encrypted")
	outer := fmt.Errorf("cat: %w", inner)

	if !stderrors.Is(outer, apperrors.New(apperrors.CodeEncrypted, "")) {
		t.Fatal("expected code match through wrapping")
	}
}

func TestCodeOf(t *testing.T) {
	if got := apperrors.CodeOf(nil); got != apperrors.CodeUnknown {
		t.Fatalf("CodeOf(nil) = %q, want %q", got, apperrors.CodeUnknown)
	}
	if got := apperrors.CodeOf(stderrors.New("plain")); got != apperrors.CodeUnknown {
		t.Fatalf("CodeOf(plain) = %q, want %q", got, apperrors.CodeUnknown)
	}
	err := apperrors.New(apperrors.CodeMissingOperand, "missing file operand")
	if got := apperrors.CodeOf(err); got != apperrors.CodeMissingOperand {
		t.Fatalf("CodeOf = %q, want %q", got, apperrors.CodeMissingOperand)
	}
}
