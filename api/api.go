// Package api is the JSON surface of the contest system. Handlers decode
// and authorize, sudoapi does the work.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"github.com/senka-oj/senka/sudoapi"
)

var decoder *schema.Decoder

func init() {
	decoder = schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	decoder.SetAliasTag("json")
}

type API struct {
	base *sudoapi.BaseAPI
}

// New declares a new API instance
func New(base *sudoapi.BaseAPI) *API {
	return &API{base}
}

func (s *API) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.SetupSession)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.base.HealthCheck(r.Context()); err != nil {
			statusError(w, err)
			return
		}
		returnData(w, "ok")
	})

	r.Route("/auth", func(r chi.Router) {
		r.With(s.MustBeVisitor).Post("/signup", s.signup)
		r.With(s.MustBeVisitor).Post("/login", s.login)
		r.With(s.MustBeAuthed).Post("/logout", s.logout)
	})

	r.Route("/contests", func(r chi.Router) {
		r.Get("/", s.contestIndex)
		r.With(s.MustBeAdmin).Post("/", s.createContest)

		r.Route("/{contestSlug}", func(r chi.Router) {
			r.Use(s.validateContestSlug)

			r.Get("/", s.contestDetail)

			r.Route("/submits", func(r chi.Router) {
				r.With(s.MustBeAuthed).Get("/", s.ownSubmissions)
				r.Get("/all", s.allSubmissions)
				r.Get("/{subID}", s.submissionDetail)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.With(s.MustBeWriter).Post("/", s.createTask)
				r.Route("/{taskSlug}", func(r chi.Router) {
					r.Use(s.validateTaskSlug)
					r.With(s.MustBeAuthed).Post("/submit", s.createSubmission)
					r.With(s.MustBeWriter).Post("/testcases", s.createTestcase)
					r.With(s.MustBeWriter).Post("/testcase-sets", s.createTestcaseSet)
				})
			})
		})
	})

	r.Route("/judge", func(r chi.Router) {
		r.Use(s.validateJudgeToken)
		r.Get("/status", s.judgeStatus)
		r.Route("/submissions/{subID}", func(r chi.Router) {
			r.Get("/source", s.judgeSubmissionSource)
			r.Post("/update", s.judgeUpdateSubmission)
			r.Post("/results", s.judgeCreateResult)
		})
	})

	return r
}
