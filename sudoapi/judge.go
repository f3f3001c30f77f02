package sudoapi

import (
	"context"
	"time"

	"github.com/senka-oj/senka"
)

// JudgeStatus is the operational snapshot the judging daemons and their
// operators poll: backlog depth on both sides of the queue plus recent
// submission activity.
type JudgeStatus struct {
	QueueLen int64 `json:"queue_len"`
	Waiting  int   `json:"waiting"`

	RecentHour     int        `json:"recent_hour"`
	LastSubmission *time.Time `json:"last_submission"`
}

func (s *BaseAPI) JudgeStatus(ctx context.Context) (*JudgeStatus, *StatusError) {
	qlen, err := s.queue.Len(ctx)
	if err != nil {
		return nil, WrapError(err, "Couldn't read judge queue length")
	}
	waiting, err := s.db.SubmissionCount(ctx, senka.SubmissionFilter{Waiting: true})
	if err != nil {
		return nil, WrapError(err, "Couldn't count waiting submissions")
	}

	since := time.Now().Add(-time.Hour)
	recent, err := s.db.SubmissionCount(ctx, senka.SubmissionFilter{Since: &since})
	if err != nil {
		return nil, WrapError(err, "Couldn't count recent submissions")
	}
	last, err := s.db.LastSubmissionTime(ctx, senka.SubmissionFilter{})
	if err != nil {
		return nil, WrapError(err, "Couldn't get last submission time")
	}

	return &JudgeStatus{
		QueueLen: qlen,
		Waiting:  waiting,

		RecentHour:     recent,
		LastSubmission: last,
	}, nil
}

// HealthCheck pings the database and the judge queue.
func (s *BaseAPI) HealthCheck(ctx context.Context) *StatusError {
	if err := s.db.GetPool().Ping(ctx); err != nil {
		return WrapError(err, "Database unreachable")
	}
	if _, err := s.queue.Len(ctx); err != nil {
		return WrapError(err, "Judge queue unreachable")
	}
	return nil
}
