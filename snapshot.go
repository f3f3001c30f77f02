package senka

import (
	"sort"
	"time"
)

// TestcaseCountAt returns how many testcases existed at the given moment,
// assuming times is the problem's testcase creation timeline in ascending
// order. Testcases added after a submission was last judged must not count
// towards it, so listings resolve the count against each row's updated_at.
//
// Binary search keeps this O(log n) per row; callers batch-load the
// timelines once per request and reuse them across the page.
func TestcaseCountAt(times []time.Time, at time.Time) int {
	return sort.Search(len(times), func(i int) bool {
		return times[i].After(at)
	})
}

// JudgeProgress is the "completed/all" indicator shown while a submission
// is only partially judged.
type JudgeProgress struct {
	Completed int `json:"completed"`
	All       int `json:"all"`
}

// MakeJudgeProgress returns nil when the submission is fully judged or not
// started, since no partial-progress indicator is needed then.
func MakeJudgeProgress(completed, all int) *JudgeProgress {
	if completed >= all || completed == 0 {
		return nil
	}
	return &JudgeProgress{Completed: completed, All: all}
}
