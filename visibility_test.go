package senka

import (
	"testing"
)

func TestEvaluateSubmissionViewOwner(t *testing.T) {
	// owner during the contest: may open it, results concealed
	view := EvaluateSubmissionView(ViewerCapabilities{IsOwner: true}, false)
	if !view.FullDetail {
		t.Error("owner should always see their submission")
	}
	if !view.HideResults || !view.InContest {
		t.Error("owner results should be concealed while the contest is open")
	}

	// owner after the contest: everything visible
	view = EvaluateSubmissionView(ViewerCapabilities{IsOwner: true}, true)
	if !view.FullDetail || view.HideResults || view.InContest {
		t.Errorf("owner after contest end should see everything: %+v", view)
	}
}

func TestEvaluateSubmissionViewStranger(t *testing.T) {
	// unprivileged non-owner during the contest: nothing
	view := EvaluateSubmissionView(ViewerCapabilities{}, false)
	if view.FullDetail {
		t.Error("stranger should not open a submission during the contest")
	}

	// after the end everyone may look, anonymous viewers included
	view = EvaluateSubmissionView(ViewerCapabilities{}, true)
	if !view.FullDetail || view.HideResults {
		t.Errorf("ended contest should make submissions public: %+v", view)
	}
}

func TestEvaluateSubmissionViewPrivileged(t *testing.T) {
	for _, caps := range []ViewerCapabilities{
		{IsAdmin: true},
		{IsProblemWriter: true},
		{IsApprovedTester: true},
		{IsContestPrivileged: true},
	} {
		view := EvaluateSubmissionView(caps, false)
		if !view.FullDetail || view.HideResults || view.InContest {
			t.Errorf("privileged viewer %+v should see everything mid-contest: %+v", caps, view)
		}
	}

	// an unapproved tester carries no capability bit at all, so it behaves
	// like any other participant
	view := EvaluateSubmissionView(ViewerCapabilities{}, false)
	if view.FullDetail {
		t.Error("viewer without capabilities must not get full detail mid-contest")
	}
}

func TestViewerCapabilitiesPrivileged(t *testing.T) {
	if (ViewerCapabilities{IsOwner: true}).Privileged() {
		t.Error("ownership alone is not a privilege bit")
	}
	if !(ViewerCapabilities{IsAdmin: true}).Privileged() {
		t.Error("admin should be privileged")
	}
}
