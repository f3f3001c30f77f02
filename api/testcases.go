package api

import (
	"net/http"

	"github.com/senka-oj/senka/internal/util"
)

func (s *API) createTestcase(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Name string `json:"name"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	id, err := s.base.CreateTestcase(r.Context(), util.Problem(r), args.Name)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}

func (s *API) createTestcaseSet(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Name     string `json:"name"`
		Points   int    `json:"points"`
		IsSample bool   `json:"is_sample"`

		TestcaseIDs []int `json:"testcase_ids"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	id, err := s.base.CreateTestcaseSet(r.Context(), util.Problem(r),
		args.Name, args.Points, args.IsSample, args.TestcaseIDs,
	)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}
