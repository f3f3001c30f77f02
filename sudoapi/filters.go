package sudoapi

import (
	"context"

	"github.com/senka-oj/senka"
	"go.uber.org/zap"
)

func (s *BaseAPI) IsAuthed(user *senka.UserBrief) bool {
	return user.IsAuthed()
}

func (s *BaseAPI) IsAdmin(user *senka.UserBrief) bool {
	return user.IsAdmin()
}

func (s *BaseAPI) IsProblemWriter(user *senka.UserBrief, problem *senka.Problem) bool {
	if !user.IsAuthed() {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	if problem == nil {
		return false
	}
	return problem.WriterID == user.ID
}

func (s *BaseAPI) IsApprovedTester(ctx context.Context, user *senka.UserBrief, problem *senka.Problem) bool {
	if !user.IsAuthed() || problem == nil {
		return false
	}
	ok, err := s.db.IsApprovedTester(ctx, problem.ID, user.ID)
	if err != nil {
		zap.S().Warn(err)
		return false
	}
	return ok
}

// IsContestWriterOrTester mirrors the contest-level relation: admins, owners
// of any contest problem, and approved testers of any contest problem.
func (s *BaseAPI) IsContestWriterOrTester(ctx context.Context, user *senka.UserBrief, contest *senka.Contest) bool {
	if !user.IsAuthed() || contest == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	ok, err := s.db.IsContestWriterOrTester(ctx, contest.ID, user.ID)
	if err != nil {
		zap.S().Warn(err)
		return false
	}
	return ok
}

// SubmissionCapabilities computes the viewer's capability bits for one
// submission, once per request. The actual decision over the bits is the
// pure senka.EvaluateSubmissionView.
func (s *BaseAPI) SubmissionCapabilities(ctx context.Context, user *senka.UserBrief, sub *senka.Submission, problem *senka.Problem, contest *senka.Contest) senka.ViewerCapabilities {
	caps := senka.ViewerCapabilities{}
	if !user.IsAuthed() {
		return caps
	}
	caps.IsAdmin = user.IsAdmin()
	caps.IsOwner = sub != nil && sub.UserID == user.ID
	caps.IsProblemWriter = problem != nil && problem.WriterID == user.ID
	caps.IsApprovedTester = s.IsApprovedTester(ctx, user, problem)
	if contest.Running() && contest.OfficialMode {
		caps.IsContestPrivileged = s.IsContestWriterOrTester(ctx, user, contest)
	}
	return caps
}

// CanViewAllSubmissions gates the contest-wide listing. Once the contest has
// ended the listing is public, anonymous viewers included; while it is open
// only admins and writers-or-testers of an official-mode contest get it.
func (s *BaseAPI) CanViewAllSubmissions(ctx context.Context, user *senka.UserBrief, contest *senka.Contest) bool {
	if contest.Ended() {
		return true
	}
	if user.IsAdmin() {
		return true
	}
	return contest.OfficialMode && s.IsContestWriterOrTester(ctx, user, contest)
}

// CanSubmit checks whether the viewer may create a submission in the
// contest. Ended contests accept no submissions from anyone; writers and
// testers may submit before the contest opens.
func (s *BaseAPI) CanSubmit(ctx context.Context, user *senka.UserBrief, contest *senka.Contest) bool {
	if !user.IsAuthed() || contest == nil {
		return false
	}
	if contest.Ended() {
		return false
	}
	if s.IsContestWriterOrTester(ctx, user, contest) {
		return true
	}
	return contest.Running()
}
