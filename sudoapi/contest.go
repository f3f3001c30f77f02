package sudoapi

import (
	"context"

	"github.com/senka-oj/senka"
	"go.uber.org/zap"
)

func (s *BaseAPI) Contests(ctx context.Context, filter senka.ContestFilter) ([]*senka.Contest, *StatusError) {
	contests, err := s.db.Contests(ctx, filter)
	if err != nil {
		zap.S().Warn(err)
		return nil, WrapError(err, "Couldn't fetch contests")
	}
	return contests, nil
}

func (s *BaseAPI) ContestBySlug(ctx context.Context, slug string) (*senka.Contest, *StatusError) {
	contest, err := s.db.ContestBySlug(ctx, slug)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch contest")
	}
	if contest == nil {
		return nil, Statusf(404, "Contest not found")
	}
	return contest, nil
}

// ContestProblems lists the contest's tasks in position order.
func (s *BaseAPI) ContestProblems(ctx context.Context, contest *senka.Contest) ([]*senka.Problem, *StatusError) {
	pbs, err := s.db.Problems(ctx, senka.ProblemFilter{ContestID: &contest.ID})
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch contest tasks")
	}
	return pbs, nil
}

// ContestProblem resolves a task by its slug within one contest. A slug
// that belongs to another contest is simply not found here.
func (s *BaseAPI) ContestProblem(ctx context.Context, contest *senka.Contest, slug string) (*senka.Problem, *StatusError) {
	pb, err := s.db.ContestProblem(ctx, contest.ID, slug)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch task")
	}
	if pb == nil {
		return nil, Statusf(404, "Task not found")
	}
	return pb, nil
}

func (s *BaseAPI) CreateContest(ctx context.Context, contest *senka.Contest) (int, *StatusError) {
	if err := contest.Validate(); err != nil {
		return -1, Statusf(422, "Invalid contest: %v", err)
	}
	if existing, err := s.db.ContestBySlug(ctx, contest.Slug); err == nil && existing != nil {
		return -1, Statusf(400, "Contest slug already in use")
	}
	id, err := s.db.CreateContest(ctx, contest)
	if err != nil {
		zap.S().Warn(err)
		return -1, WrapError(err, "Couldn't create contest")
	}
	return id, nil
}

func (s *BaseAPI) CreateProblem(ctx context.Context, contest *senka.Contest, problem *senka.Problem, author *senka.UserBrief) (int, *StatusError) {
	problem.ContestID = contest.ID
	problem.WriterID = author.ID
	if err := problem.Validate(); err != nil {
		return -1, Statusf(422, "Invalid task: %v", err)
	}
	if existing, err := s.db.ContestProblem(ctx, contest.ID, problem.Slug); err == nil && existing != nil {
		return -1, Statusf(400, "Task slug already in use")
	}
	id, err := s.db.CreateProblem(ctx, problem)
	if err != nil {
		zap.S().Warn(err)
		return -1, WrapError(err, "Couldn't create task")
	}
	return id, nil
}
