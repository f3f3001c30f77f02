package sudoapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matryer/is"
	"github.com/senka-oj/senka"
)

// The in-contest and concealment flags are part of the detail payload, not
// just internal gates.
func TestFullSubmissionDetailFlags(t *testing.T) {
	is := is.New(t)

	view := senka.EvaluateSubmissionView(senka.ViewerCapabilities{IsOwner: true}, false)
	full := &FullSubmission{
		ResultsHidden: view.HideResults,
		InContest:     view.InContest,
	}

	data, err := json.Marshal(full)
	is.NoErr(err)

	var decoded map[string]any
	is.NoErr(json.Unmarshal(data, &decoded))
	is.Equal(decoded["in_contest"], true)
	is.Equal(decoded["results_hidden"], true)
}

func TestCreateTestcaseRequiresName(t *testing.T) {
	is := is.New(t)

	s := &BaseAPI{}
	_, err := s.CreateTestcase(context.Background(), &senka.Problem{ID: 1}, "   ")
	is.True(err != nil)
	is.Equal(err.Code, 400)
}

func TestCreateTestcaseSetValidation(t *testing.T) {
	is := is.New(t)

	s := &BaseAPI{}
	_, err := s.CreateTestcaseSet(context.Background(), &senka.Problem{ID: 1}, "", 10, false, nil)
	is.True(err != nil)
	is.Equal(err.Code, 400)

	_, err = s.CreateTestcaseSet(context.Background(), &senka.Problem{ID: 1}, "samples", -5, true, nil)
	is.True(err != nil)
	is.Equal(err.Code, 400)
}
