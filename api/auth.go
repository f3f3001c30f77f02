package api

import (
	"net/http"
)

func (s *API) signup(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	sid, err := s.base.Signup(r.Context(), args.Name, args.Email, args.Password)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, sid)
}

func (s *API) login(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}

	sid, err := s.base.Login(r.Context(), args.Name, args.Password)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, sid)
}

func (s *API) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.base.Logout(r.Context(), getAuthHeader(r)); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Logged out")
}
