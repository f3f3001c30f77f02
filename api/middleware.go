package api

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/senka-oj/senka/internal/config"
	"github.com/senka-oj/senka/internal/util"
)

// SetupSession adds the session's user to context. Anonymous and stale
// sessions pass through without a user.
func (s *API) SetupSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.base.SessionUser(r.Context(), getAuthHeader(r))
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.UserKey, user)))
	})
}

// MustBeAuthed is middleware to make sure the user creating the request is authenticated
func (s *API) MustBeAuthed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.base.IsAuthed(util.UserBrief(r)) {
			errorData(w, "You must be authenticated to do this", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MustBeVisitor is middleware to make sure the user creating the request is not authenticated
func (s *API) MustBeVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.base.IsAuthed(util.UserBrief(r)) {
			errorData(w, "You must not be logged in to do this", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MustBeWriter is middleware to make sure the user creating the request may author tasks
func (s *API) MustBeWriter(next http.Handler) http.Handler {
	return s.MustBeAuthed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !util.UserBrief(r).IsWriter() {
			errorData(w, "You must be a writer to do this", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// MustBeAdmin is middleware to make sure the user creating the request is an admin
func (s *API) MustBeAdmin(next http.Handler) http.Handler {
	return s.MustBeAuthed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.base.IsAdmin(util.UserBrief(r)) {
			errorData(w, "You must be an admin to do this", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// validateContestSlug fetches the contest named in the URL and adds it to
// context. An unknown slug is a 404.
func (s *API) validateContestSlug(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contest, err := s.base.ContestBySlug(r.Context(), chi.URLParam(r, "contestSlug"))
		if err != nil {
			statusError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.ContestKey, contest)))
	})
}

// validateTaskSlug resolves the task inside the context contest. A task slug
// that belongs to a different contest is a 404 here.
func (s *API) validateTaskSlug(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pb, err := s.base.ContestProblem(r.Context(), util.Contest(r), chi.URLParam(r, "taskSlug"))
		if err != nil {
			statusError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.ProblemKey, pb)))
	})
}

// validateJudgeToken gates the judge-facing routes behind the shared token.
func (s *API) validateJudgeToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := config.Judge.Token
		if token == "" {
			errorData(w, "Judge API is disabled", http.StatusForbidden)
			return
		}
		if subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Judge-Token")), []byte(token)) != 1 {
			errorData(w, "Invalid judge token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getAuthHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "guest" {
		header = ""
	}
	return header
}
