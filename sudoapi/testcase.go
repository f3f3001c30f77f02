package sudoapi

import (
	"context"
	"strings"

	"github.com/senka-oj/senka"
	"go.uber.org/zap"
)

func (s *BaseAPI) ProblemTestcases(ctx context.Context, problem *senka.Problem) ([]*senka.Testcase, *StatusError) {
	tcs, err := s.db.Testcases(ctx, problem.ID)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch testcases")
	}
	return tcs, nil
}

// CreateTestcase appends a testcase to a task. Its creation time anchors it
// in the task's snapshot timeline, so submissions already judged never count
// it against them.
func (s *BaseAPI) CreateTestcase(ctx context.Context, problem *senka.Problem, name string) (int, *StatusError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, Statusf(400, "Invalid testcase name")
	}

	id, err := s.db.CreateTestcase(ctx, problem.ID, name)
	if err != nil {
		zap.S().Warn(err)
		return -1, WrapError(err, "Couldn't create testcase")
	}
	return id, nil
}

// CreateTestcaseSet groups existing testcases of one task, optionally as the
// sample set whose identifiers stay visible while contest results are
// concealed.
func (s *BaseAPI) CreateTestcaseSet(ctx context.Context, problem *senka.Problem, name string, points int, isSample bool, testcaseIDs []int) (int, *StatusError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, Statusf(400, "Invalid set name")
	}
	if points < 0 {
		return -1, Statusf(400, "Invalid point value")
	}

	tcs, serr := s.ProblemTestcases(ctx, problem)
	if serr != nil {
		return -1, serr
	}
	owned := make(map[int]bool)
	for _, tc := range tcs {
		owned[tc.ID] = true
	}
	for _, id := range testcaseIDs {
		if !owned[id] {
			return -1, Statusf(400, "Testcase %d does not belong to this task", id)
		}
	}

	setID, err := s.db.CreateTestcaseSet(ctx, &senka.TestcaseSet{
		ProblemID: problem.ID,
		Name:      name,
		Points:    points,
		IsSample:  isSample,
	})
	if err != nil {
		zap.S().Warn(err)
		return -1, WrapError(err, "Couldn't create testcase set")
	}
	for _, id := range testcaseIDs {
		if err := s.db.AddTestcaseToSet(ctx, setID, id); err != nil {
			return -1, WrapError(err, "Couldn't add testcase to set")
		}
	}
	return setID, nil
}
