package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/senka-oj/senka"
	"github.com/senka-oj/senka/internal/util"
	"github.com/senka-oj/senka/sudoapi"
)

type submissionListQuery struct {
	Page    int    `json:"page"`
	Count   int    `json:"count"`
	Options string `json:"options"`
}

func (q submissionListQuery) params() sudoapi.SubmissionListingParams {
	return sudoapi.SubmissionListingParams{
		Pagination: senka.Pagination{Page: q.Page, PerPage: q.Count},
		Options:    q.Options,
	}
}

// ownSubmissions lists the viewer's submissions in the contest. Always
// allowed to authenticated users, during the contest included.
func (s *API) ownSubmissions(w http.ResponseWriter, r *http.Request) {
	var q submissionListQuery
	if err := parseRequest(r, &q); err != nil {
		statusError(w, err)
		return
	}
	params := q.params()
	params.UserID = &util.UserBrief(r).ID

	listing, err := s.base.ContestSubmissions(r.Context(), util.Contest(r), params)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, listing)
}

// allSubmissions is the contest-wide listing. Public once the contest has
// ended, otherwise restricted to admins and official-mode writers/testers.
func (s *API) allSubmissions(w http.ResponseWriter, r *http.Request) {
	if !s.base.CanViewAllSubmissions(r.Context(), util.UserBrief(r), util.Contest(r)) {
		errorData(w, "You cannot view all submissions in this contest", http.StatusForbidden)
		return
	}

	var q submissionListQuery
	if err := parseRequest(r, &q); err != nil {
		statusError(w, err)
		return
	}

	listing, err := s.base.ContestSubmissions(r.Context(), util.Contest(r), q.params())
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, listing)
}

func (s *API) submissionDetail(w http.ResponseWriter, r *http.Request) {
	subID, err := strconv.Atoi(chi.URLParam(r, "subID"))
	if err != nil {
		errorData(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}
	sub, err1 := s.base.ContestSubmission(r.Context(), util.UserBrief(r), util.Contest(r), subID)
	if err1 != nil {
		statusError(w, err1)
		return
	}
	returnData(w, sub)
}

// createSubmission takes the raw source as the request body; the language
// comes from the X-Language header.
func (s *API) createSubmission(w http.ResponseWriter, r *http.Request) {
	code, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		errorData(w, "Couldn't read source code", http.StatusBadRequest)
		return
	}

	id, err1 := s.base.CreateSubmission(r.Context(),
		util.UserBrief(r), util.Contest(r), util.Problem(r),
		r.Header.Get("X-Language"), code,
	)
	if err1 != nil {
		statusError(w, err1)
		return
	}
	returnData(w, id)
}
