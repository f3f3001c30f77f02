package senka

import (
	"testing"
)

func TestComparePositions(t *testing.T) {
	cases := []struct {
		a, b string
		want int // sign only
	}{
		{"A", "B", -1},
		{"B", "A", 1},
		{"A", "A", 0},
		{"Z", "AA", -1},
		{"AA", "B", 1},
		{"AB", "AA", 1},
	}
	for _, c := range cases {
		got := ComparePositions(c.a, c.b)
		if (got < 0) != (c.want < 0) || (got > 0) != (c.want > 0) {
			t.Errorf("ComparePositions(%q, %q) = %d, wanted sign %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSortProblems(t *testing.T) {
	pbs := []*Problem{
		{ID: 1, Position: "B"},
		{ID: 2, Position: "AA"},
		{ID: 3, Position: "A"},
	}
	SortProblems(pbs)

	want := []string{"A", "B", "AA"}
	for i, pos := range want {
		if pbs[i].Position != pos {
			t.Fatalf("position %d: got %q, wanted %q", i, pbs[i].Position, pos)
		}
	}
}

func TestSortProblemsDuplicateLabels(t *testing.T) {
	pbs := []*Problem{
		{ID: 7, Position: "A"},
		{ID: 3, Position: "A"},
	}
	SortProblems(pbs)
	if pbs[0].ID != 3 || pbs[1].ID != 7 {
		t.Errorf("duplicate labels should fall back on ID order, got [%d %d]", pbs[0].ID, pbs[1].ID)
	}
}
