package sudoapi

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/senka-oj/senka"
	"go.uber.org/zap"
)

// Uncached session lookup, used as the cache loader.
func (s *BaseAPI) sessionUser(ctx context.Context, sid string) (*senka.User, error) {
	uid, err := s.db.GetSession(ctx, sid)
	if err != nil {
		return nil, err
	}
	user, err := s.db.User(ctx, uid)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch session user")
	}
	if user == nil {
		return nil, Statusf(401, "Invalid session")
	}
	return user, nil
}

// SessionUser resolves the viewer behind a session ID. An empty or stale
// session yields an anonymous viewer rather than an error, since most
// endpoints accept anonymous requests.
func (s *BaseAPI) SessionUser(ctx context.Context, sid string) *senka.User {
	if sid == "" {
		return nil
	}
	user, err := s.sessionUserCache.Get(ctx, sid)
	if err != nil {
		var serr *StatusError
		if !errors.As(err, &serr) || serr.Code >= 500 {
			slog.WarnContext(ctx, "session user cache error", slog.Any("err", err))
		}
		return nil
	}
	return user
}

func (s *BaseAPI) UserByName(ctx context.Context, name string) (*senka.User, *StatusError) {
	user, err := s.db.UserByName(ctx, name)
	if err != nil {
		return nil, WrapError(err, "Couldn't fetch user")
	}
	if user == nil {
		return nil, Statusf(404, "User not found")
	}
	return user, nil
}

// Login checks the credentials and opens a session. The same error covers
// unknown names and wrong passwords.
func (s *BaseAPI) Login(ctx context.Context, name, password string) (string, *StatusError) {
	user, err := s.db.UserByName(ctx, name)
	if err != nil {
		zap.S().Warn(err)
		return "", WrapError(err, "Couldn't fetch user")
	}
	if user == nil || senka.CheckPwdHash(password, user.Password) != nil {
		return "", Statusf(400, "Invalid login details")
	}

	sid, err := s.db.CreateSession(ctx, user.ID)
	if err != nil {
		return "", WrapError(err, "Couldn't create session")
	}
	return sid, nil
}

func (s *BaseAPI) Logout(ctx context.Context, sid string) *StatusError {
	if err := s.db.RemoveSession(ctx, sid); err != nil {
		zap.S().Warn("Failed to remove session: ", err)
		return WrapError(err, "Couldn't remove session")
	}
	s.sessionUserCache.Delete(sid)
	return nil
}

// Signup registers a new member account and opens its first session.
func (s *BaseAPI) Signup(ctx context.Context, name, email, password string) (string, *StatusError) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if len(password) < 6 || len(password) > 72 {
		return "", Statusf(422, "Invalid password length")
	}

	user := &senka.User{Name: name, Email: email, Role: senka.RoleMember}
	if err := user.Validate(); err != nil {
		return "", Statusf(422, "Invalid signup details: %v", err)
	}

	if existing, err := s.db.UserByName(ctx, name); err == nil && existing != nil {
		return "", Statusf(400, "Username already in use")
	}
	if existing, err := s.db.Users(ctx, senka.UserFilter{Email: &email, Limit: 1}); err == nil && len(existing) > 0 {
		return "", Statusf(400, "Email already in use")
	}

	hash, err := senka.HashPassword(password)
	if err != nil {
		return "", WrapError(err, "Couldn't hash password")
	}
	id, err := s.db.CreateUser(ctx, name, email, hash, senka.RoleMember)
	if err != nil {
		zap.S().Warn(err)
		return "", WrapError(err, "Couldn't create user")
	}

	sid, err := s.db.CreateSession(ctx, id)
	if err != nil {
		return "", WrapError(err, "Couldn't create session")
	}
	return sid, nil
}
