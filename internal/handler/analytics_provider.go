package handler

import (
	"context"
	"time"

	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/service"
)

type bundleLoader interface {
	LoadBundle(ctx context.Context, id string) (*service.Bundle, error)
}

type cardAnalytics interface {
	RecordProfileView(ctx context.Context, event service.CardEvent, now time.Time) (*db.CardStatistic, error)
	RecordDownload(ctx context.Context, event service.CardEvent, now time.Time) (*db.CardStatistic, error)
}

type cardStatsReader interface {
	Statistic(ctx context.Context, profileID string) (db.CardStatistic, error)
	SourceCounts(ctx context.Context, profileID string) (map[string]int64, error)
}
