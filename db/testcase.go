package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/senka-oj/senka"
)

// TestcaseTimesByProblem returns, for each requested problem, the ascending
// sequence of its testcase creation timestamps. One grouped query serves a
// whole listing page; snapshot counts are then resolved per row in memory.
func (s *DB) TestcaseTimesByProblem(ctx context.Context, problemIDs []int) (map[int][]time.Time, error) {
	times := make(map[int][]time.Time)
	if len(problemIDs) == 0 {
		return times, nil
	}
	rows, err := s.pgconn.Query(ctx,
		"SELECT problem_id, created_at FROM testcases WHERE problem_id = ANY($1) ORDER BY problem_id ASC, created_at ASC",
		problemIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return times, nil
		}
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pbID int
		var t time.Time
		if err := rows.Scan(&pbID, &t); err != nil {
			return nil, err
		}
		times[pbID] = append(times[pbID], t)
	}
	return times, rows.Err()
}

// TestcaseResultCounts returns how many judged results each submission has
// received so far, grouped in a single query.
func (s *DB) TestcaseResultCounts(ctx context.Context, submissionIDs []int) (map[int]int, error) {
	counts := make(map[int]int)
	if len(submissionIDs) == 0 {
		return counts, nil
	}
	rows, err := s.pgconn.Query(ctx,
		"SELECT submission_id, COUNT(*) FROM testcase_results WHERE submission_id = ANY($1) GROUP BY submission_id",
		submissionIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return counts, nil
		}
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var subID, cnt int
		if err := rows.Scan(&subID, &cnt); err != nil {
			return nil, err
		}
		counts[subID] = cnt
	}
	return counts, rows.Err()
}

type dbTestcase struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	ProblemID int       `db:"problem_id"`
	Name      string    `db:"name"`
}

// Testcases lists a problem's testcases in creation order, the same order
// the snapshot timelines are built in.
func (s *DB) Testcases(ctx context.Context, problemID int) ([]*senka.Testcase, error) {
	rows, _ := s.pgconn.Query(ctx,
		"SELECT * FROM testcases WHERE problem_id = $1 ORDER BY created_at ASC, id ASC",
		problemID,
	)
	tcs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbTestcase])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*senka.Testcase{}, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(tcs, s.internalToTestcase), nil
}

// CreateTestcase appends a testcase to a problem. created_at defaults to
// NOW(), which is what anchors it in the snapshot timeline.
func (s *DB) CreateTestcase(ctx context.Context, problemID int, name string) (int, error) {
	if problemID <= 0 || name == "" {
		return -1, senka.ErrMissingRequired
	}
	var id int
	err := s.pgconn.QueryRow(ctx,
		"INSERT INTO testcases (problem_id, name) VALUES ($1, $2) RETURNING id",
		problemID, name,
	).Scan(&id)
	return id, err
}

func (s *DB) CreateTestcaseSet(ctx context.Context, set *senka.TestcaseSet) (int, error) {
	if set == nil || set.ProblemID <= 0 || set.Name == "" {
		return -1, senka.ErrMissingRequired
	}
	var id int
	err := s.pgconn.QueryRow(ctx,
		"INSERT INTO testcase_sets (problem_id, name, points, is_sample) VALUES ($1, $2, $3, $4) RETURNING id",
		set.ProblemID, set.Name, set.Points, set.IsSample,
	).Scan(&id)
	return id, err
}

// AddTestcaseToSet records set membership. Re-adding is a no-op.
func (s *DB) AddTestcaseToSet(ctx context.Context, setID, testcaseID int) error {
	_, err := s.pgconn.Exec(ctx,
		"INSERT INTO testcase_set_members (testcase_set_id, testcase_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		setID, testcaseID,
	)
	return err
}

type dbTestcaseResult struct {
	ID           int       `db:"id"`
	CreatedAt    time.Time `db:"created_at"`
	SubmissionID int       `db:"submission_id"`
	TestcaseID   int       `db:"testcase_id"`

	Status          string  `db:"status"`
	ExecutionTime   float64 `db:"execution_time"`
	ExecutionMemory int     `db:"execution_memory"`
}

func (s *DB) TestcaseResults(ctx context.Context, submissionID int) ([]*senka.TestcaseResult, error) {
	rows, _ := s.pgconn.Query(ctx,
		"SELECT * FROM testcase_results WHERE submission_id = $1 ORDER BY testcase_id ASC",
		submissionID,
	)
	results, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbTestcaseResult])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*senka.TestcaseResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(results, s.internalToTestcaseResult), nil
}

const createResultQuery = `
INSERT INTO testcase_results (submission_id, testcase_id, status, execution_time, execution_memory)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (submission_id, testcase_id)
	DO UPDATE SET status = EXCLUDED.status, execution_time = EXCLUDED.execution_time, execution_memory = EXCLUDED.execution_memory
	RETURNING id;`

// CreateTestcaseResult upserts one judged outcome. The judging collaborator
// may retry, so a repeat report for the same testcase overwrites the old row.
func (s *DB) CreateTestcaseResult(ctx context.Context, res *senka.TestcaseResult) (int, error) {
	if res == nil || res.SubmissionID <= 0 || res.TestcaseID <= 0 {
		return -1, senka.ErrMissingRequired
	}
	var id int
	err := s.pgconn.QueryRow(ctx, createResultQuery,
		res.SubmissionID, res.TestcaseID, res.Status, res.ExecutionTime, res.ExecutionMemory,
	).Scan(&id)
	return id, err
}

// SampleTestcaseIDs lists the testcases in the problem's sample sets. These
// are the only identifiers revealed while contest results are concealed.
func (s *DB) SampleTestcaseIDs(ctx context.Context, problemID int) ([]int, error) {
	rows, err := s.pgconn.Query(ctx, `
		SELECT tc.id FROM testcases tc
			INNER JOIN testcase_set_members m ON m.testcase_id = tc.id
			INNER JOIN testcase_sets ts ON ts.id = m.testcase_set_id
		WHERE ts.problem_id = $1 AND ts.is_sample = true
		ORDER BY tc.id ASC`,
		problemID,
	)
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

func (s *DB) internalToTestcase(tc *dbTestcase) *senka.Testcase {
	if tc == nil {
		return nil
	}
	return &senka.Testcase{
		ID:        tc.ID,
		CreatedAt: tc.CreatedAt,
		ProblemID: tc.ProblemID,
		Name:      tc.Name,
	}
}

func (s *DB) internalToTestcaseResult(r *dbTestcaseResult) *senka.TestcaseResult {
	if r == nil {
		return nil
	}
	return &senka.TestcaseResult{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		SubmissionID: r.SubmissionID,
		TestcaseID:   r.TestcaseID,

		Status:          senka.Status(r.Status),
		ExecutionTime:   r.ExecutionTime,
		ExecutionMemory: r.ExecutionMemory,
	}
}
