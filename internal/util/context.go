package util

import (
	"net/http"

	"github.com/senka-oj/senka"
)

// ContextType is the string type for all context values
type ContextType string

const (
	// UserKey is the key to be used for adding user objects to context
	UserKey = ContextType("user")
	// ContestKey is the key to be used for adding contests to context
	ContestKey = ContextType("contest")
	// ProblemKey is the key to be used for adding problems to context
	ProblemKey = ContextType("problem")
)

// User returns the authenticated user from request context, or nil for an
// anonymous request
func User(r *http.Request) *senka.User {
	switch v := r.Context().Value(UserKey).(type) {
	case senka.User:
		return &v
	case *senka.User:
		return v
	default:
		return nil
	}
}

// UserBrief is the viewer identity threaded through every visibility check
func UserBrief(r *http.Request) *senka.UserBrief {
	return User(r).Brief()
}

// Contest returns the contest from request context
func Contest(r *http.Request) *senka.Contest {
	switch v := r.Context().Value(ContestKey).(type) {
	case senka.Contest:
		return &v
	case *senka.Contest:
		return v
	default:
		return nil
	}
}

// Problem returns the problem from request context
func Problem(r *http.Request) *senka.Problem {
	switch v := r.Context().Value(ProblemKey).(type) {
	case senka.Problem:
		return &v
	case *senka.Problem:
		return v
	default:
		return nil
	}
}
