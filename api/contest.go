package api

import (
	"net/http"
	"time"

	"github.com/senka-oj/senka"
	"github.com/senka-oj/senka/internal/util"
)

func (s *API) contestIndex(w http.ResponseWriter, r *http.Request) {
	var q struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}
	if err := parseRequest(r, &q); err != nil {
		statusError(w, err)
		return
	}
	contests, err := s.base.Contests(r.Context(), senka.ContestFilter{Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, contests)
}

func (s *API) contestDetail(w http.ResponseWriter, r *http.Request) {
	contest := util.Contest(r)
	pbs, err := s.base.ContestProblems(r.Context(), contest)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, struct {
		Contest *senka.Contest   `json:"contest"`
		Tasks   []*senka.Problem `json:"tasks"`
	}{contest, pbs})
}

func (s *API) createContest(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Name         string    `json:"name"`
		Slug         string    `json:"slug"`
		Description  string    `json:"description"`
		StartTime    time.Time `json:"start_time"`
		EndTime      time.Time `json:"end_time"`
		OfficialMode bool      `json:"official_mode"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	id, err := s.base.CreateContest(r.Context(), &senka.Contest{
		Name:        args.Name,
		Slug:        args.Slug,
		Description: args.Description,

		StartTime: args.StartTime,
		EndTime:   args.EndTime,

		OfficialMode: args.OfficialMode,
	})
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}

func (s *API) createTask(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Slug     string `json:"slug"`
		Name     string `json:"name"`
		Position string `json:"position"`

		Statement   string  `json:"statement"`
		TimeLimit   float64 `json:"time_limit"`
		MemoryLimit int     `json:"memory_limit"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	id, err := s.base.CreateProblem(r.Context(), util.Contest(r), &senka.Problem{
		Slug:     args.Slug,
		Name:     args.Name,
		Position: args.Position,

		Statement:   args.Statement,
		TimeLimit:   args.TimeLimit,
		MemoryLimit: args.MemoryLimit,
	}, util.UserBrief(r))
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}
