package senka

import (
	"errors"
	"testing"
)

func TestWrapErrorPropagatesCode(t *testing.T) {
	inner := Statusf(404, "Submission not found")
	wrapped := WrapError(inner, "Couldn't fetch submission")

	if wrapped.Code != 404 {
		t.Errorf("wrapping should keep the inner status code, got %d", wrapped.Code)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("wrapped error should match the inner error")
	}
}

func TestWrapErrorPlain(t *testing.T) {
	wrapped := WrapError(errors.New("connection refused"), "Couldn't fetch submission")
	if wrapped.Code != 500 {
		t.Errorf("plain errors should wrap as 500, got %d", wrapped.Code)
	}
}

func TestErrorCode(t *testing.T) {
	if got := ErrorCode(nil); got != 200 {
		t.Errorf("nil error should be a 200, got %d", got)
	}
	if got := ErrorCode(ErrSubmissionPrivate); got != 403 {
		t.Errorf("private submission error should be a 403, got %d", got)
	}
	if got := ErrorCode(errors.New("boom")); got != 500 {
		t.Errorf("unknown error should be a 500, got %d", got)
	}
}
