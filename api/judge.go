package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/senka-oj/senka"
	"github.com/shopspring/decimal"
)

// The judge routes are the write path of the external judging pipeline.
// They are authenticated with the shared token, not a user session.

func (s *API) judgeStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.base.JudgeStatus(r.Context())
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, status)
}

func judgeSubID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "subID"))
	if err != nil {
		errorData(w, "Invalid submission ID", http.StatusBadRequest)
		return -1, false
	}
	return id, true
}

func (s *API) judgeSubmissionSource(w http.ResponseWriter, r *http.Request) {
	id, ok := judgeSubID(w, r)
	if !ok {
		return
	}
	sub, err := s.base.Submission(r.Context(), id)
	if err != nil {
		statusError(w, err)
		return
	}
	code, err1 := s.base.RawSubmissionCode(r.Context(), sub)
	if err1 != nil {
		errorData(w, "Couldn't read submission source", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(code)
}

func (s *API) judgeUpdateSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := judgeSubID(w, r)
	if !ok {
		return
	}
	var args struct {
		Status senka.Status     `json:"status"`
		Point  *decimal.Decimal `json:"point"`

		ExecutionTime   *float64 `json:"execution_time"`
		ExecutionMemory *int     `json:"execution_memory"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	if err := s.base.UpdateSubmission(r.Context(), id, senka.SubmissionUpdate{
		Status: args.Status,
		Point:  args.Point,

		ExecutionTime:   args.ExecutionTime,
		ExecutionMemory: args.ExecutionMemory,
	}); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Updated")
}

func (s *API) judgeCreateResult(w http.ResponseWriter, r *http.Request) {
	id, ok := judgeSubID(w, r)
	if !ok {
		return
	}
	var args struct {
		TestcaseID int          `json:"testcase_id"`
		Status     senka.Status `json:"status"`

		ExecutionTime   float64 `json:"execution_time"`
		ExecutionMemory int     `json:"execution_memory"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	if err := s.base.CreateTestcaseResult(r.Context(), &senka.TestcaseResult{
		SubmissionID: id,
		TestcaseID:   args.TestcaseID,

		Status:          args.Status,
		ExecutionTime:   args.ExecutionTime,
		ExecutionMemory: args.ExecutionMemory,
	}); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Recorded")
}
