package api

import (
	"encoding/json"
	"net/http"

	"github.com/senka-oj/senka"
)

func returnData(w http.ResponseWriter, retData any) {
	senka.StatusData(w, "success", retData, 200)
}

func errorData(w http.ResponseWriter, retData any, errCode int) {
	senka.StatusData(w, "error", retData, errCode)
}

func statusError(w http.ResponseWriter, err *senka.StatusError) {
	err.WriteError(w)
}

func parseJsonBody[T any](r *http.Request, output *T) *senka.StatusError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(output); err != nil {
		return senka.Statusf(400, "Invalid JSON input.")
	}
	return nil
}

func parseRequest[T any](r *http.Request, output *T) *senka.StatusError {
	if err := r.ParseForm(); err != nil {
		return senka.Statusf(400, "Invalid query parameters")
	}
	if err := decoder.Decode(output, r.Form); err != nil {
		return senka.Statusf(400, "Invalid query parameters")
	}
	return nil
}
