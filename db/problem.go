package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/senka-oj/senka"
	"go.uber.org/zap"
)

type dbProblem struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	ContestID int       `db:"contest_id"`
	WriterID  int       `db:"writer_id"`

	Slug     string `db:"slug"`
	Name     string `db:"name"`
	Position string `db:"position"`

	Statement   string  `db:"statement"`
	TimeLimit   float64 `db:"time_limit"`
	MemoryLimit int     `db:"memory_limit"`
}

func (s *DB) Problems(ctx context.Context, filter senka.ProblemFilter) ([]*senka.Problem, error) {
	fb := newFilterBuilder()
	problemFilterQuery(&filter, fb)

	// char-length-then-lexical position order, same rule as senka.ComparePositions
	query := fmt.Sprintf(
		"SELECT * FROM problems WHERE %s ORDER BY char_length(position) ASC, position ASC, id ASC %s",
		fb.Where(), FormatLimitOffset(filter.Limit, filter.Offset),
	)
	rows, _ := s.pgconn.Query(ctx, query, fb.Args()...)
	pbs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbProblem])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*senka.Problem{}, nil
	}
	if err != nil {
		zap.S().Warn(err)
		return nil, err
	}
	return mapper(pbs, s.internalToProblem), nil
}

func (s *DB) Problem(ctx context.Context, id int) (*senka.Problem, error) {
	return toSingular(ctx, senka.ProblemFilter{ID: &id, Limit: 1}, s.Problems)
}

func (s *DB) ContestProblem(ctx context.Context, contestID int, slug string) (*senka.Problem, error) {
	return toSingular(ctx, senka.ProblemFilter{ContestID: &contestID, Slug: &slug, Limit: 1}, s.Problems)
}

// ContestProblemIDs is the base scope predicate of every contest listing.
func (s *DB) ContestProblemIDs(ctx context.Context, contestID int) ([]int, error) {
	rows, err := s.pgconn.Query(ctx, "SELECT id FROM problems WHERE contest_id = $1", contestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []int{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const createProblemQuery = `
INSERT INTO problems (contest_id, writer_id, slug, name, position, statement, time_limit, memory_limit)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`

func (s *DB) CreateProblem(ctx context.Context, pb *senka.Problem) (int, error) {
	if pb == nil || pb.ContestID <= 0 || pb.Slug == "" || pb.Name == "" {
		return -1, senka.ErrMissingRequired
	}
	var id int
	err := s.pgconn.QueryRow(ctx, createProblemQuery,
		pb.ContestID, pb.WriterID, pb.Slug, pb.Name, pb.Position,
		pb.Statement, pb.TimeLimit, pb.MemoryLimit,
	).Scan(&id)
	return id, err
}

func problemFilterQuery(filter *senka.ProblemFilter, fb *filterBuilder) {
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.IDs; v != nil && len(v) == 0 {
		fb.AddConstraint("id = -1")
	}
	if v := filter.IDs; len(v) > 0 {
		fb.AddConstraint("id = ANY(%s)", v)
	}
	if v := filter.ContestID; v != nil {
		fb.AddConstraint("contest_id = %s", v)
	}
	if v := filter.Slug; v != nil {
		fb.AddConstraint("slug = %s", v)
	}
	if v := filter.WriterID; v != nil {
		fb.AddConstraint("writer_id = %s", v)
	}
}

// IsApprovedTester checks the tester relation on a single problem. An
// unapproved relation grants nothing.
func (s *DB) IsApprovedTester(ctx context.Context, problemID, userID int) (bool, error) {
	var ok bool
	err := s.pgconn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM tester_relations WHERE problem_id = $1 AND user_id = $2 AND approved = true)",
		problemID, userID,
	).Scan(&ok)
	return ok, err
}

// IsContestWriterOrTester reports whether the user writes, or holds an
// approved tester relation on, any problem of the contest.
func (s *DB) IsContestWriterOrTester(ctx context.Context, contestID, userID int) (bool, error) {
	var ok bool
	err := s.pgconn.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM problems WHERE contest_id = $1 AND writer_id = $2
		) OR EXISTS (
			SELECT 1 FROM tester_relations tr
				INNER JOIN problems pb ON pb.id = tr.problem_id
			WHERE pb.contest_id = $1 AND tr.user_id = $2 AND tr.approved = true
		)`,
		contestID, userID,
	).Scan(&ok)
	return ok, err
}

func (s *DB) internalToProblem(pb *dbProblem) *senka.Problem {
	if pb == nil {
		return nil
	}
	return &senka.Problem{
		ID:        pb.ID,
		CreatedAt: pb.CreatedAt,
		ContestID: pb.ContestID,
		WriterID:  pb.WriterID,

		Slug:     pb.Slug,
		Name:     pb.Name,
		Position: pb.Position,

		Statement:   pb.Statement,
		TimeLimit:   pb.TimeLimit,
		MemoryLimit: pb.MemoryLimit,
	}
}
