package sudoapi

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/senka-oj/senka"
	"go.uber.org/zap"
)

// maxSourceSize bounds submitted source code. Large blobs belong nowhere
// near the judge pipeline.
const maxSourceSize = 100 * 1024

// Submission is a listing row: the raw row plus the author and problem it
// joins against, and the partial-judging indicator when one applies.
type Submission struct {
	senka.Submission
	Author  *senka.UserBrief `json:"author"`
	Problem *senka.Problem   `json:"problem"`

	JudgeProgress *senka.JudgeProgress `json:"judge_progress,omitempty"`
}

type SubmissionListing struct {
	Submissions []*Submission        `json:"submissions"`
	Pagination  senka.PaginationMeta `json:"pagination"`
}

// FullSubmission is the detail view. Results and Code are only populated
// when the visibility decision allows them; while results are concealed in
// an open contest, SampleTestcaseIDs is the only per-case information left.
type FullSubmission struct {
	Submission

	ResultCount   int  `json:"result_count"`
	TestcaseCount int  `json:"testcase_count"`
	ResultsHidden bool `json:"results_hidden"`
	InContest     bool `json:"in_contest"`

	Results           []*senka.TestcaseResult `json:"results,omitempty"`
	SampleTestcaseIDs []int                   `json:"sample_testcase_ids,omitempty"`

	Code string `json:"code,omitempty"`
}

// SubmissionListingParams is the decoded query of a listing request. Options
// is the raw sort/filter payload, validated here so a bad field never
// reaches the query builder.
type SubmissionListingParams struct {
	Pagination senka.Pagination
	Options    string

	// UserID restricts the listing to one author's submissions
	UserID *int
}

// ContestSubmissions assembles one listing page. Everything beyond the base
// rows is batch-loaded: authors, problems, testcase timelines and result
// counts each cost one query per page, regardless of page size.
func (s *BaseAPI) ContestSubmissions(ctx context.Context, contest *senka.Contest, params SubmissionListingParams) (*SubmissionListing, *StatusError) {
	opts, serr := senka.ParseListingOptions(params.Options)
	if serr != nil {
		return nil, serr
	}
	page := params.Pagination.WithDefaults(s.maxPageSize)

	pbIDs, err := s.db.ContestProblemIDs(ctx, contest.ID)
	if err != nil {
		return nil, WrapError(err, "Couldn't get contest tasks")
	}

	filter := senka.SubmissionFilter{
		ProblemIDs: pbIDs,
		UserID:     params.UserID,

		Ordering: opts.Sort,
		Limit:    page.PerPage,
		Offset:   page.Offset(),
	}
	for _, f := range opts.Filter {
		val := f.Value
		switch f.Field {
		case senka.FilterByUser:
			filter.UserName = &val
		case senka.FilterByTask:
			filter.TaskSlug = &val
		case senka.FilterByStatus:
			filter.Status = senka.Status(val)
		}
	}

	subs, err := s.db.Submissions(ctx, filter)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch submissions")
	}
	count, err := s.db.SubmissionCount(ctx, filter)
	if err != nil {
		return nil, WrapError(err, "Couldn't count submissions")
	}

	rows, serr := s.fillSubmissions(ctx, subs)
	if serr != nil {
		return nil, serr
	}
	return &SubmissionListing{
		Submissions: rows,
		Pagination:  senka.MakePaginationMeta(page, count),
	}, nil
}

// fillSubmissions joins authors, problems and judge progress onto a page of
// rows. The testcase count for each row is resolved against the row's own
// updated_at, so cases added after a submission was judged don't show up as
// missing progress.
func (s *BaseAPI) fillSubmissions(ctx context.Context, subs []*senka.Submission) ([]*Submission, *StatusError) {
	userIDs := make([]int, 0, len(subs))
	pbIDs := make([]int, 0, len(subs))
	subIDs := make([]int, 0, len(subs))
	for _, sub := range subs {
		userIDs = append(userIDs, sub.UserID)
		pbIDs = append(pbIDs, sub.ProblemID)
		subIDs = append(subIDs, sub.ID)
	}

	users, err := s.db.Users(ctx, senka.UserFilter{IDs: userIDs})
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch submission authors")
	}
	authors := make(map[int]*senka.UserBrief)
	for _, u := range users {
		authors[u.ID] = u.Brief()
	}

	problems, err := s.db.Problems(ctx, senka.ProblemFilter{IDs: pbIDs})
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch submission tasks")
	}
	pbs := make(map[int]*senka.Problem)
	for _, pb := range problems {
		pbs[pb.ID] = pb
	}

	tcTimes, err := s.db.TestcaseTimesByProblem(ctx, pbIDs)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch testcase data")
	}
	resCounts, err := s.db.TestcaseResultCounts(ctx, subIDs)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch result counts")
	}

	rows := make([]*Submission, 0, len(subs))
	for _, sub := range subs {
		all := senka.TestcaseCountAt(tcTimes[sub.ProblemID], sub.UpdatedAt)
		rows = append(rows, &Submission{
			Submission: *sub,
			Author:     authors[sub.UserID],
			Problem:    pbs[sub.ProblemID],

			JudgeProgress: senka.MakeJudgeProgress(resCounts[sub.ID], all),
		})
	}
	return rows, nil
}

// Submission is the raw lookup used by the judge-facing routes. Viewer
// visibility rules don't apply there.
func (s *BaseAPI) Submission(ctx context.Context, id int) (*senka.Submission, *StatusError) {
	sub, err := s.db.Submission(ctx, id)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch submission")
	}
	if sub == nil {
		return nil, Statusf(404, "Submission not found")
	}
	return sub, nil
}

// ContestSubmission resolves one submission in the contest's scope and
// applies the visibility decision for the viewer. A submission from another
// contest is a 404, not a 403, so IDs can't be probed across contests.
func (s *BaseAPI) ContestSubmission(ctx context.Context, viewer *senka.UserBrief, contest *senka.Contest, id int) (*FullSubmission, *StatusError) {
	sub, err := s.db.Submission(ctx, id)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch submission")
	}
	if sub == nil {
		return nil, Statusf(404, "Submission not found")
	}
	pb, err := s.db.Problem(ctx, sub.ProblemID)
	if err != nil || pb == nil {
		return nil, WrapError(err, "Couldn't fetch submission task")
	}
	if pb.ContestID != contest.ID {
		return nil, Statusf(404, "Submission not found")
	}

	caps := s.SubmissionCapabilities(ctx, viewer, sub, pb, contest)
	view := senka.EvaluateSubmissionView(caps, contest.Ended())
	if !view.FullDetail {
		return nil, senka.ErrSubmissionPrivate
	}

	author, err := s.db.User(ctx, sub.UserID)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch submission author")
	}

	tcTimes, err := s.db.TestcaseTimesByProblem(ctx, []int{pb.ID})
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch testcase data")
	}
	all := senka.TestcaseCountAt(tcTimes[pb.ID], sub.UpdatedAt)
	resCounts, err := s.db.TestcaseResultCounts(ctx, []int{sub.ID})
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch result counts")
	}
	completed := resCounts[sub.ID]

	// a submission still being judged keeps its per-case verdicts hidden
	// even from viewers the contest no longer restricts
	hideResults := view.HideResults || completed < all

	full := &FullSubmission{
		Submission: Submission{
			Submission: *sub,
			Author:     author.Brief(),
			Problem:    pb,

			JudgeProgress: senka.MakeJudgeProgress(completed, all),
		},

		ResultCount:   completed,
		TestcaseCount: all,
		ResultsHidden: hideResults,
		InContest:     view.InContest,
	}

	if !hideResults {
		results, err := s.db.TestcaseResults(ctx, sub.ID)
		if err != nil {
			return nil, WrapError(err, "Couldn't fetch testcase results")
		}
		full.Results = results
	} else if view.InContest {
		sampleIDs, err := s.db.SampleTestcaseIDs(ctx, pb.ID)
		if err != nil {
			return nil, WrapError(err, "Couldn't fetch sample testcases")
		}
		full.SampleTestcaseIDs = sampleIDs
	}

	if caps.IsOwner || caps.Privileged() {
		code, err := s.RawSubmissionCode(ctx, sub)
		if err != nil {
			zap.S().Warn("Couldn't read submission source: ", err)
		} else {
			full.Code = string(code)
		}
	}

	return full, nil
}

// CreateSubmission stores the source, records the row and hands the ID to
// the judge queue. A queue push failure is logged but doesn't fail the
// request, since the row already exists in queued state.
func (s *BaseAPI) CreateSubmission(ctx context.Context, author *senka.UserBrief, contest *senka.Contest, problem *senka.Problem, lang string, code []byte) (int, *StatusError) {
	if !s.CanSubmit(ctx, author, contest) {
		return -1, Statusf(403, "You cannot submit to this contest")
	}
	if lang == "" {
		return -1, Statusf(400, "Invalid language")
	}
	if len(code) == 0 {
		return -1, Statusf(400, "Empty source code")
	}
	if len(code) > maxSourceSize {
		return -1, Statusf(400, "Source code too long")
	}

	sourceUUID := uuid.NewString()
	if err := s.mgr.Sources().WriteFile(sourceUUID, bytes.NewReader(code), 0644); err != nil {
		return -1, WrapError(err, "Couldn't store submission source")
	}

	id, err := s.db.CreateSubmission(ctx, author.ID, problem, lang, len(code), sourceUUID)
	if err != nil {
		zap.S().Warn(err)
		return -1, WrapError(err, "Couldn't create submission")
	}

	if err := s.queue.Enqueue(ctx, id); err != nil {
		slog.WarnContext(ctx, "Couldn't enqueue submission for judging", slog.Int("id", id), slog.Any("err", err))
	}

	return id, nil
}

func (s *BaseAPI) RawSubmissionCode(ctx context.Context, sub *senka.Submission) ([]byte, error) {
	return s.mgr.Sources().ReadFile(sub.SourceUUID)
}

// UpdateSubmission applies a judge progress report. Every applied update
// bumps the row's updated_at, which anchors its testcase snapshot.
func (s *BaseAPI) UpdateSubmission(ctx context.Context, id int, upd senka.SubmissionUpdate) *StatusError {
	if err := s.db.UpdateSubmission(ctx, id, upd); err != nil {
		return WrapError(err, "Couldn't update submission")
	}
	if upd.Status.Finished() {
		slog.InfoContext(ctx, "Submission finished judging", slog.Int("id", id), slog.String("status", string(upd.Status)))
	}
	return nil
}

// CreateTestcaseResult records one judged outcome. Reports are idempotent
// per (submission, testcase), so judge retries are safe.
func (s *BaseAPI) CreateTestcaseResult(ctx context.Context, res *senka.TestcaseResult) *StatusError {
	if _, err := s.db.CreateTestcaseResult(ctx, res); err != nil {
		return WrapError(err, "Couldn't record testcase result")
	}
	return nil
}
