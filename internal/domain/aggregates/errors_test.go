package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatchesCodeSentinel(t *testing.T) {
	err := fmt.Errorf("grading: %w", NotFound("Learning.Progress.ApplyCorrectAnswer", "challenge not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(ErrNotFound): want=true got=false")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("errors.Is(ErrConflict): want=false got=true")
	}
	if got := CodeOf(err); got != CodeNotFound {
		t.Fatalf("CodeOf: want=%s got=%s", CodeNotFound, got)
	}
}

func TestErrorString(t *testing.T) {
	err := Validation("Learning.Progress.RefillHearts", "hearts already full")
	want := "Learning.Progress.RefillHearts: hearts already full (validation)"
	if err.Error() != want {
		t.Fatalf("Error(): want=%q got=%q", want, err.Error())
	}
	if got := (&Error{Code: CodeInternal}).Error(); got != "failed (internal)" {
		t.Fatalf("bare Error(): got %q", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Wrap(CodeRetryable, "op", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("Wrap lost cause")
	}
	if Wrap(CodeRetryable, "op", nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
}
