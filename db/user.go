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

type dbUser struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
}

func (s *DB) Users(ctx context.Context, filter senka.UserFilter) ([]*senka.User, error) {
	fb := newFilterBuilder()
	userFilterQuery(&filter, fb)

	query := fmt.Sprintf(
		"SELECT * FROM users WHERE %s ORDER BY id ASC %s",
		fb.Where(), FormatLimitOffset(filter.Limit, filter.Offset),
	)
	rows, _ := s.pgconn.Query(ctx, query, fb.Args()...)
	users, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbUser])
	if errors.Is(err, pgx.ErrNoRows) {
		return []*senka.User{}, nil
	}
	if err != nil {
		zap.S().Warn(err)
		return nil, err
	}
	return mapper(users, s.internalToUser), nil
}

func (s *DB) User(ctx context.Context, id int) (*senka.User, error) {
	return toSingular(ctx, senka.UserFilter{ID: &id, Limit: 1}, s.Users)
}

func (s *DB) UserByName(ctx context.Context, name string) (*senka.User, error) {
	return toSingular(ctx, senka.UserFilter{Name: &name, Limit: 1}, s.Users)
}

func (s *DB) CreateUser(ctx context.Context, name, email, pwdHash string, role senka.UserRole) (int, error) {
	if name == "" || email == "" || pwdHash == "" {
		return -1, senka.ErrMissingRequired
	}
	var id int
	err := s.pgconn.QueryRow(ctx,
		"INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id",
		name, email, pwdHash, role,
	).Scan(&id)
	return id, err
}

func userFilterQuery(filter *senka.UserFilter, fb *filterBuilder) {
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.IDs; v != nil && len(v) == 0 {
		fb.AddConstraint("id = -1")
	}
	if v := filter.IDs; len(v) > 0 {
		fb.AddConstraint("id = ANY(%s)", v)
	}
	if v := filter.Name; v != nil {
		fb.AddConstraint("lower(name) = lower(%s)", v)
	}
	if v := filter.Email; v != nil {
		fb.AddConstraint("lower(email) = lower(%s)", v)
	}
	if v := filter.Role; v != nil {
		fb.AddConstraint("role = %s", v)
	}
}

func (s *DB) internalToUser(u *dbUser) *senka.User {
	if u == nil {
		return nil
	}
	return &senka.User{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      senka.UserRole(u.Role),
	}
}
