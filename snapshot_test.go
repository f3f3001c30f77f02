package senka

import (
	"testing"
	"time"
)

func TestTestcaseCountAt(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(1 * time.Minute),
		base.Add(2 * time.Minute),
		base.Add(1 * time.Hour),
		base.Add(2 * time.Hour),
	}

	cases := []struct {
		at   time.Time
		want int
	}{
		{base.Add(-time.Minute), 0},
		{base, 1},
		{base.Add(90 * time.Second), 2},
		{base.Add(5 * time.Minute), 3},
		{base.Add(3 * time.Hour), 5},
	}
	for _, c := range cases {
		if got := TestcaseCountAt(times, c.at); got != c.want {
			t.Errorf("TestcaseCountAt(%v) = %d, wanted %d", c.at, got, c.want)
		}
	}

	if got := TestcaseCountAt(nil, base); got != 0 {
		t.Errorf("empty timeline should count 0 testcases, got %d", got)
	}
}

// A submission judged on 3 testcases must keep showing 3/3 even after 2 more
// testcases are added to the problem.
func TestTestcaseCountAtIgnoresLaterAdditions(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Minute), base.Add(2 * time.Minute)}
	judgedAt := base.Add(10 * time.Minute)

	if got := TestcaseCountAt(times, judgedAt); got != 3 {
		t.Fatalf("wanted 3 testcases at judge time, got %d", got)
	}

	times = append(times, base.Add(time.Hour), base.Add(2*time.Hour))
	if got := TestcaseCountAt(times, judgedAt); got != 3 {
		t.Errorf("later testcases leaked into the snapshot: got %d, wanted 3", got)
	}
	if MakeJudgeProgress(3, TestcaseCountAt(times, judgedAt)) != nil {
		t.Error("fully judged submission should have no progress indicator")
	}
}

func TestMakeJudgeProgress(t *testing.T) {
	if p := MakeJudgeProgress(2, 5); p == nil || p.Completed != 2 || p.All != 5 {
		t.Errorf("partial progress 2/5 misreported: %+v", p)
	}
	if p := MakeJudgeProgress(5, 5); p != nil {
		t.Errorf("complete judging should yield nil, got %+v", p)
	}
	if p := MakeJudgeProgress(0, 5); p != nil {
		t.Errorf("unstarted judging should yield nil, got %+v", p)
	}
	if p := MakeJudgeProgress(0, 0); p != nil {
		t.Errorf("zero testcases should yield nil, got %+v", p)
	}
}
