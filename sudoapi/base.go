package sudoapi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/Yiling-J/theine-go"
	"github.com/senka-oj/senka"
	"github.com/senka-oj/senka/datastore"
	"github.com/senka-oj/senka/db"
	"github.com/senka-oj/senka/internal/config"
	"github.com/senka-oj/senka/judgeq"
)

type BaseAPI struct {
	db    *db.DB
	mgr   *datastore.Manager
	queue *judgeq.Queue

	sessionUserCache *theine.LoadingCache[string, *senka.User]

	maxPageSize int
}

func GetBaseAPI(ctx context.Context, dbClient *db.DB, mgr *datastore.Manager, queue *judgeq.Queue, maxPageSize int) (*BaseAPI, error) {
	base := &BaseAPI{
		db:    dbClient,
		mgr:   mgr,
		queue: queue,

		maxPageSize: maxPageSize,
	}
	sUserCache, err := theine.NewBuilder[string, *senka.User](500).BuildWithLoader(func(ctx context.Context, sid string) (theine.Loaded[*senka.User], error) {
		user, err := base.sessionUser(ctx, sid)
		if err != nil {
			return theine.Loaded[*senka.User]{}, err
		}
		return theine.Loaded[*senka.User]{
			Value: user,
			Cost:  1,
			TTL:   20 * time.Second,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not build session user cache: %w", err)
	}
	base.sessionUserCache = sUserCache

	return base, nil
}

func InitializeBaseAPI(ctx context.Context) (*BaseAPI, error) {
	if !path.IsAbs(config.Common.DataDir) {
		return nil, Statusf(400, "dataDir is not absolute")
	}
	if err := os.MkdirAll(config.Common.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("couldn't create data dir: %w", err)
	}

	mgr, err := datastore.New(config.Common.DataDir)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize data store: %w", err)
	}

	dbClient, err := db.NewPSQL(ctx, config.Database.String())
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to DB: %w", err)
	}
	slog.InfoContext(ctx, "Connected to DB")

	queue, err := judgeq.New(ctx, config.Cache.GenOptions(), config.Cache.List)
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to judge queue: %w", err)
	}
	slog.InfoContext(ctx, "Connected to judge queue")

	return GetBaseAPI(ctx, dbClient, mgr, queue, config.Listing.MaxPageSize)
}

func (s *BaseAPI) Close() error {
	if err := s.queue.Close(); err != nil {
		return fmt.Errorf("couldn't close judge queue: %w", err)
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("couldn't close DB: %w", err)
	}
	return nil
}
