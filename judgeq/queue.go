// Package judgeq hands submissions off to the external judging pipeline.
// The judge daemons BRPOP the list and report results back over the judge
// API; this side only ever pushes.
package judgeq

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const defaultList = "senka:judge_queue"

type Queue struct {
	rdb  *redis.Client
	list string
}

func New(ctx context.Context, opts *redis.Options, list string) (*Queue, error) {
	if list == "" {
		list = defaultList
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("couldn't connect to redis: %w", err)
	}
	return &Queue{rdb: rdb, list: list}, nil
}

// Enqueue queues a submission for judging.
func (q *Queue) Enqueue(ctx context.Context, submissionID int) error {
	return q.rdb.LPush(ctx, q.list, strconv.Itoa(submissionID)).Err()
}

// Len is the number of submissions still waiting for a judge.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.list).Result()
}

func (q *Queue) Close() error {
	return q.rdb.Close()
}
