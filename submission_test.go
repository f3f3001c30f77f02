package senka

import (
	"testing"
)

func TestStatusFinished(t *testing.T) {
	finished := []Status{
		StatusAccepted, StatusWrongAnswer, StatusTimeLimit, StatusMemoryLimit,
		StatusRuntimeError, StatusCompileError, StatusInternalError,
	}
	for _, st := range finished {
		if !st.Finished() {
			t.Errorf("%q should be a finished status", st)
		}
	}

	for _, st := range []Status{StatusNone, StatusQueued, StatusCompiling, StatusRunning} {
		if st.Finished() {
			t.Errorf("%q should not be a finished status", st)
		}
	}
}
