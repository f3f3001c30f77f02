package senka

import (
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Problem struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ContestID int       `json:"contest_id"`
	WriterID  int       `json:"writer_id"`

	// Slug is unique within a contest
	Slug string `json:"slug"`
	Name string `json:"name"`

	// Position is the label inside the contest ("A", "B", ..., "AA").
	// Ordering is char-length-then-lexical, see ComparePositions.
	Position string `json:"position"`

	Statement   string `json:"statement,omitempty"`
	TimeLimit   float64 `json:"time_limit"`
	MemoryLimit int     `json:"memory_limit"`
}

func (p *Problem) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Slug, validation.Required, validation.By(checkSlug)),
		validation.Field(&p.Position, validation.Required),
	)
}

type ProblemFilter struct {
	ID        *int    `json:"id"`
	IDs       []int   `json:"ids"`
	ContestID *int    `json:"contest_id"`
	Slug      *string `json:"slug"`
	WriterID  *int    `json:"writer_id"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ComparePositions orders contest positions by character length first and
// lexically second, so "A" < "B" < ... < "Z" < "AA".
// It is the single source of truth for problem ordering, shared by the
// contest problem listing and the "task" submission sort.
func ComparePositions(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

// SortProblems sorts in place by position, using problem ID as a tiebreak
// so the result is deterministic even on duplicate labels.
func SortProblems(pbs []*Problem) {
	slices.SortFunc(pbs, func(a, b *Problem) int {
		if c := ComparePositions(a.Position, b.Position); c != 0 {
			return c
		}
		return a.ID - b.ID
	})
}

// Testcase creation timestamps are what the snapshot resolver runs against:
// cases added after a submission was judged must not count towards it.
type Testcase struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ProblemID int       `json:"problem_id"`
	Name      string    `json:"name"`
}

type TestcaseSet struct {
	ID        int    `json:"id"`
	ProblemID int    `json:"problem_id"`
	Name      string `json:"name"`
	Points    int    `json:"points"`
	IsSample  bool   `json:"is_sample"`
}

// TesterRelation links a problem to a user that may test it before release.
// An unapproved tester has no elevated visibility.
type TesterRelation struct {
	ID        int  `json:"id"`
	ProblemID int  `json:"problem_id"`
	UserID    int  `json:"user_id"`
	Approved  bool `json:"approved"`
}
