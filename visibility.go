package senka

// ViewerCapabilities is the viewer/role dispatch for one submission,
// computed once per request. The individual bits come from db lookups; the
// decision over them is pure.
type ViewerCapabilities struct {
	IsAdmin          bool
	IsOwner          bool
	IsProblemWriter  bool
	IsApprovedTester bool

	// IsContestPrivileged is set for contest writers-or-testers while the
	// contest is running in official mode
	IsContestPrivileged bool
}

// Privileged reports whether the viewer may see full detail regardless of
// contest timing.
func (c ViewerCapabilities) Privileged() bool {
	return c.IsAdmin || c.IsProblemWriter || c.IsApprovedTester || c.IsContestPrivileged
}

// SubmissionView is the outcome of a detail-visibility decision.
type SubmissionView struct {
	// FullDetail is whether the viewer may open the submission at all
	FullDetail bool

	// HideResults conceals per-case verdicts; only sample testcase
	// identifiers may be revealed while it is set
	HideResults bool

	// InContest marks an unprivileged view during an open contest window
	InContest bool
}

// EvaluateSubmissionView decides detail visibility for one submission.
// contestEnded is the only timing input: while the contest is open,
// non-owners without privilege get nothing, and even owners see their
// results concealed.
func EvaluateSubmissionView(caps ViewerCapabilities, contestEnded bool) SubmissionView {
	view := SubmissionView{}

	if caps.Privileged() || caps.IsOwner {
		view.FullDetail = true
	} else {
		view.FullDetail = contestEnded
	}

	if !contestEnded && !caps.Privileged() {
		view.HideResults = true
		view.InContest = true
	}

	return view
}
