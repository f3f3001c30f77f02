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

type dbContest struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`

	Description string `db:"description"`

	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`

	OfficialMode bool `db:"official_mode"`
}

func (s *DB) Contests(ctx context.Context, filter senka.ContestFilter) ([]*senka.Contest, error) {
	fb := newFilterBuilder()
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.Slug; v != nil {
		fb.AddConstraint("slug = %s", v)
	}

	query := fmt.Sprintf(
		"SELECT * FROM contests WHERE %s ORDER BY start_time DESC, id DESC %s",
		fb.Where(), FormatLimitOffset(filter.Limit, filter.Offset),
	)
	rows, _ := s.pgconn.Query(ctx, query, fb.Args()...)
	contests, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbContest])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*senka.Contest{}, nil
	}
	if err != nil {
		zap.S().Warn(err)
		return nil, err
	}
	return mapper(contests, s.internalToContest), nil
}

func (s *DB) Contest(ctx context.Context, id int) (*senka.Contest, error) {
	return toSingular(ctx, senka.ContestFilter{ID: &id, Limit: 1}, s.Contests)
}

func (s *DB) ContestBySlug(ctx context.Context, slug string) (*senka.Contest, error) {
	return toSingular(ctx, senka.ContestFilter{Slug: &slug, Limit: 1}, s.Contests)
}

const createContestQuery = `
INSERT INTO contests (name, slug, description, start_time, end_time, official_mode)
	VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`

func (s *DB) CreateContest(ctx context.Context, c *senka.Contest) (int, error) {
	if c == nil || c.Name == "" || c.Slug == "" {
		return -1, senka.ErrMissingRequired
	}
	var id int
	err := s.pgconn.QueryRow(ctx, createContestQuery,
		c.Name, c.Slug, c.Description, c.StartTime, c.EndTime, c.OfficialMode,
	).Scan(&id)
	return id, err
}

func (s *DB) internalToContest(c *dbContest) *senka.Contest {
	if c == nil {
		return nil
	}
	return &senka.Contest{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Name:      c.Name,
		Slug:      c.Slug,

		Description: c.Description,

		StartTime: c.StartTime,
		EndTime:   c.EndTime,

		OfficialMode: c.OfficialMode,
	}
}
