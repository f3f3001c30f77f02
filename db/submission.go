package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/senka-oj/senka"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type dbSubmission struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	UserID    int       `db:"user_id"`
	ProblemID int       `db:"problem_id"`
	Language  string    `db:"lang"`
	Status    string    `db:"status"`

	Point decimal.Decimal `db:"point"`

	ExecutionTime   float64 `db:"execution_time"`
	ExecutionMemory int     `db:"execution_memory"`

	CodeSize   int    `db:"code_size"`
	SourceUUID string `db:"source_uuid"`
}

// Submissions lists submissions under the given filter. The query always
// joins users and problems so that display-name and task predicates, plus
// the position-based "task" ordering, can be resolved in a single pass.
func (s *DB) Submissions(ctx context.Context, filter senka.SubmissionFilter) ([]*senka.Submission, error) {
	fb := newFilterBuilder()
	subFilterQuery(&filter, fb)

	query := fmt.Sprintf(
		"SELECT submissions.* FROM submissions %s WHERE %s %s %s",
		submissionJoins, fb.Where(), submissionOrdering(filter.Ordering), FormatLimitOffset(filter.Limit, filter.Offset),
	)
	rows, _ := s.pgconn.Query(ctx, query, fb.Args()...)
	subs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbSubmission])
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, context.Canceled) {
		return []*senka.Submission{}, nil
	} else if err != nil {
		zap.S().Warn(err)
		return []*senka.Submission{}, err
	}
	return mapper(subs, s.internalToSubmission), nil
}

func (s *DB) Submission(ctx context.Context, id int) (*senka.Submission, error) {
	return toSingular(ctx, senka.SubmissionFilter{ID: &id, Limit: 1}, s.Submissions)
}

func (s *DB) SubmissionCount(ctx context.Context, filter senka.SubmissionFilter) (int, error) {
	fb := newFilterBuilder()
	subFilterQuery(&filter, fb)
	var val int
	err := s.pgconn.QueryRow(ctx,
		"SELECT COUNT(*) FROM submissions "+submissionJoins+" WHERE "+fb.Where(),
		fb.Args()...,
	).Scan(&val)
	if err != nil {
		return -1, err
	}
	return val, nil
}

const createSubQuery = `
INSERT INTO submissions (user_id, problem_id, lang, status, point, code_size, source_uuid)
	VALUES ($1, $2, $3, $4, 0, $5, $6) RETURNING id;`

func (s *DB) CreateSubmission(ctx context.Context, authorID int, problem *senka.Problem, lang string, codeSize int, sourceUUID string) (int, error) {
	if authorID <= 0 || problem == nil || lang == "" || sourceUUID == "" {
		return -1, senka.ErrMissingRequired
	}
	var id int
	err := s.pgconn.QueryRow(ctx, createSubQuery, authorID, problem.ID, lang, senka.StatusQueued, codeSize, sourceUUID).Scan(&id)
	return id, err
}

// UpdateSubmission applies a judge-side update. updated_at is always bumped,
// since it anchors the testcase snapshot for this submission.
func (s *DB) UpdateSubmission(ctx context.Context, id int, upd senka.SubmissionUpdate) error {
	ub := newUpdateBuilder()
	subUpdateQuery(&upd, ub)
	if err := ub.CheckUpdates(); err != nil {
		return err
	}
	ub.AddUpdate("updated_at = NOW()")
	fb := ub.MakeFilter()
	fb.AddConstraint("id = %s", id)
	_, err := s.pgconn.Exec(ctx, "UPDATE submissions SET "+fb.WithUpdate(), fb.Args()...)
	return err
}

func (s *DB) LastSubmissionTime(ctx context.Context, filter senka.SubmissionFilter) (*time.Time, error) {
	fb := newFilterBuilder()
	subFilterQuery(&filter, fb)
	var t time.Time
	err := s.pgconn.QueryRow(ctx,
		"SELECT submissions.created_at FROM submissions "+submissionJoins+" WHERE "+fb.Where()+" ORDER BY submissions.created_at DESC LIMIT 1",
		fb.Args()...,
	).Scan(&t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

const submissionJoins = `
	INNER JOIN users ON users.id = submissions.user_id
	INNER JOIN problems ON problems.id = submissions.problem_id`

var waitingStatuses = []string{
	string(senka.StatusQueued), string(senka.StatusCompiling), string(senka.StatusRunning),
}

func subFilterQuery(filter *senka.SubmissionFilter, fb *filterBuilder) {
	if v := filter.ID; v != nil {
		fb.AddConstraint("submissions.id = %s", v)
	}
	if v := filter.UserID; v != nil {
		fb.AddConstraint("submissions.user_id = %s", v)
	}
	if v := filter.ProblemID; v != nil {
		fb.AddConstraint("submissions.problem_id = %s", v)
	}
	if v := filter.ProblemIDs; v != nil && len(v) == 0 {
		fb.AddConstraint("submissions.problem_id = -1")
	}
	if v := filter.ProblemIDs; len(v) > 0 {
		fb.AddConstraint("submissions.problem_id = ANY(%s)", v)
	}

	if v := filter.Status; v != senka.StatusNone {
		fb.AddConstraint("submissions.status = %s", v)
	}
	if v := filter.Lang; v != nil {
		fb.AddConstraint("lower(submissions.lang) = lower(%s)", v)
	}
	if v := filter.UserName; v != nil {
		fb.AddConstraint("users.name = %s", v)
	}
	if v := filter.TaskSlug; v != nil {
		fb.AddConstraint("problems.slug = %s", v)
	}

	if filter.Waiting {
		fb.AddConstraint("submissions.status = ANY(%s)", waitingStatuses)
	}
	if v := filter.Since; v != nil {
		fb.AddConstraint("submissions.created_at >= %s", v)
	}
}

func subUpdateQuery(upd *senka.SubmissionUpdate, b *updateBuilder) {
	if v := upd.Status; v != senka.StatusNone {
		b.AddUpdate("status = %s", v)
	}
	if v := upd.Point; v != nil {
		b.AddUpdate("point = %s", v)
	}
	if v := upd.ExecutionTime; v != nil {
		b.AddUpdate("execution_time = %s", v)
	}
	if v := upd.ExecutionMemory; v != nil {
		b.AddUpdate("execution_memory = %s", v)
	}
}

// sortColumns is the closed whitelist of listing sort columns. Fields are
// validated when the options payload is parsed; anything that still falls
// outside the map here is dropped rather than interpolated.
var sortColumns = map[senka.SortField]string{
	senka.SortByDate:            "submissions.created_at",
	senka.SortByUser:            "users.name",
	senka.SortByLang:            "submissions.lang",
	senka.SortByScore:           "submissions.point",
	senka.SortByStatus:          "submissions.status",
	senka.SortByExecutionTime:   "submissions.execution_time",
	senka.SortByExecutionMemory: "submissions.execution_memory",
}

// submissionOrdering renders the ORDER BY clause for validated sort
// criteria. Every ordering ends in (created_at DESC, id DESC) so page
// boundaries stay reproducible across requests.
func submissionOrdering(criteria []senka.SortCriterion) string {
	parts := make([]string, 0, len(criteria)+2)
	for _, c := range criteria {
		dir := " ASC"
		if c.Descending {
			dir = " DESC"
		}
		if c.Field == senka.SortByTask {
			// same char-length-then-lexical rule as contest problem ordering
			parts = append(parts, "char_length(problems.position)"+dir, "problems.position"+dir)
			continue
		}
		col, ok := sortColumns[c.Field]
		if !ok {
			continue
		}
		parts = append(parts, col+dir)
	}
	parts = append(parts, "submissions.created_at DESC", "submissions.id DESC")
	return "ORDER BY " + strings.Join(parts, ", ")
}

func (s *DB) internalToSubmission(sub *dbSubmission) *senka.Submission {
	if sub == nil {
		return nil
	}

	return &senka.Submission{
		ID:        sub.ID,
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
		UserID:    sub.UserID,
		ProblemID: sub.ProblemID,
		Language:  sub.Language,
		Status:    senka.Status(sub.Status),

		Point: sub.Point,

		ExecutionTime:   sub.ExecutionTime,
		ExecutionMemory: sub.ExecutionMemory,

		CodeSize:   sub.CodeSize,
		SourceUUID: sub.SourceUUID,
	}
}
