package senka

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusNone      Status = ""
	StatusQueued    Status = "queued"
	StatusCompiling Status = "compiling"
	StatusRunning   Status = "running"

	StatusAccepted      Status = "accepted"
	StatusWrongAnswer   Status = "wrong_answer"
	StatusTimeLimit     Status = "time_limit"
	StatusMemoryLimit   Status = "memory_limit"
	StatusRuntimeError  Status = "runtime_error"
	StatusCompileError  Status = "compile_error"
	StatusInternalError Status = "internal_error"
)

func (s Status) Finished() bool {
	switch s {
	case StatusAccepted, StatusWrongAnswer, StatusTimeLimit, StatusMemoryLimit,
		StatusRuntimeError, StatusCompileError, StatusInternalError:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface
func (s *Status) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		*s = Status(v)
	case string:
		*s = Status(v)
	default:
		return fmt.Errorf("unsupported scan type for Status: %T", src)
	}
	return nil
}

type Submission struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt marks when judging last progressed. It is the snapshot
	// anchor for deciding which testcases were current for this submission.
	UpdatedAt time.Time `json:"updated_at"`

	UserID    int    `json:"user_id"`
	ProblemID int    `json:"problem_id"`
	Language  string `json:"lang"`
	Status    Status `json:"status"`

	Point decimal.Decimal `json:"point"`

	ExecutionTime   float64 `json:"execution_time"`
	ExecutionMemory int     `json:"execution_memory"`

	CodeSize int `json:"code_size"`

	// SourceUUID names the stored source object in the sources bucket
	SourceUUID string `json:"-"`
}

// SubmissionUpdate carries the fields the judging collaborator writes back.
// Every applied update bumps updated_at.
type SubmissionUpdate struct {
	Status Status
	Point  *decimal.Decimal

	ExecutionTime   *float64
	ExecutionMemory *int
}

// TestcaseResult is the judged outcome of one submission against one testcase.
type TestcaseResult struct {
	ID           int       `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	SubmissionID int       `json:"submission_id"`
	TestcaseID   int       `json:"testcase_id"`

	Status          Status  `json:"status"`
	ExecutionTime   float64 `json:"execution_time"`
	ExecutionMemory int     `json:"execution_memory"`
}

// SubmissionFilter is the set of base predicates a listing runs under.
// Sort and equality filters from the client arrive separately as
// ListingOptions and are whitelisted before they get anywhere near SQL.
type SubmissionFilter struct {
	ID         *int  `json:"id"`
	UserID     *int  `json:"user_id"`
	ProblemID  *int  `json:"problem_id"`
	ProblemIDs []int `json:"problem_ids"`

	Status   Status  `json:"status"`
	Lang     *string `json:"lang"`
	UserName *string `json:"user_name"`
	TaskSlug *string `json:"task_slug"`

	Waiting bool       `json:"waiting"`
	Since   *time.Time `json:"since"`

	Ordering []SortCriterion `json:"ordering"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
