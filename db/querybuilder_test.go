package db

import (
	"testing"

	"github.com/matryer/is"
	"github.com/senka-oj/senka"
)

func TestFilterBuilder(t *testing.T) {
	is := is.New(t)

	fb := newFilterBuilder()
	is.Equal(fb.Where(), "1 = 1") // no constraints

	fb.AddConstraint("submissions.user_id = %s", 42)
	fb.AddConstraint("problems.slug = %s", "two-sum")
	fb.AddConstraint("submissions.status = ANY(%s)", []string{"queued", "running"})

	is.Equal(fb.Where(), "submissions.user_id = $1 AND problems.slug = $2 AND submissions.status = ANY($3)")
	is.Equal(len(fb.Args()), 3)
}

func TestFilterBuilderNoArgs(t *testing.T) {
	is := is.New(t)

	fb := newFilterBuilder()
	fb.AddConstraint("submissions.problem_id = -1")
	is.Equal(fb.Where(), "submissions.problem_id = -1")
	is.Equal(len(fb.Args()), 0)
}

func TestUpdateBuilder(t *testing.T) {
	is := is.New(t)

	ub := newUpdateBuilder()
	is.True(ub.CheckUpdates() != nil) // empty update must be rejected

	ub.AddUpdate("status = %s", "accepted")
	ub.AddUpdate("updated_at = NOW()")
	is.NoErr(ub.CheckUpdates())

	fb := ub.MakeFilter()
	fb.AddConstraint("id = %s", 7)

	// the WHERE parameter must continue the SET numbering
	is.Equal(fb.WithUpdate(), "status = $1, updated_at = NOW() WHERE id = $2")
	is.Equal(len(fb.Args()), 2)
}

func TestSubmissionOrdering(t *testing.T) {
	is := is.New(t)

	// no criteria: just the stable fallback
	is.Equal(submissionOrdering(nil), "ORDER BY submissions.created_at DESC, submissions.id DESC")

	is.Equal(
		submissionOrdering([]senka.SortCriterion{{Field: senka.SortByScore, Descending: true}}),
		"ORDER BY submissions.point DESC, submissions.created_at DESC, submissions.id DESC",
	)

	// the task sort expands to the char-length-then-lexical pair
	is.Equal(
		submissionOrdering([]senka.SortCriterion{{Field: senka.SortByTask}}),
		"ORDER BY char_length(problems.position) ASC, problems.position ASC, submissions.created_at DESC, submissions.id DESC",
	)
}

func TestSubFilterQuery(t *testing.T) {
	is := is.New(t)

	name := "alice"
	slug := "two-sum"
	fb := newFilterBuilder()
	subFilterQuery(&senka.SubmissionFilter{UserName: &name, TaskSlug: &slug}, fb)
	is.Equal(fb.Where(), "users.name = $1 AND problems.slug = $2")

	// an empty (but non-nil) problem scope must match nothing, not everything
	fb = newFilterBuilder()
	subFilterQuery(&senka.SubmissionFilter{ProblemIDs: []int{}}, fb)
	is.Equal(fb.Where(), "submissions.problem_id = -1")

	fb = newFilterBuilder()
	subFilterQuery(&senka.SubmissionFilter{Waiting: true}, fb)
	is.Equal(fb.Where(), "submissions.status = ANY($1)")
}

func TestFormatLimitOffset(t *testing.T) {
	is := is.New(t)

	is.Equal(FormatLimitOffset(20, 40), "LIMIT 20 OFFSET 40")
	is.Equal(FormatLimitOffset(20, 0), "LIMIT 20")
	is.Equal(FormatLimitOffset(0, 40), "OFFSET 40")
	is.Equal(FormatLimitOffset(0, 0), "")
}
