package handler

import (
	"context"
	"sync"
	"time"

	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/metrics"
	"github.com/tapcard/internal/service"
	"go.uber.org/zap"
)

// viewTracker records card analytics off the request path. Failures are
// logged and dropped; they never reach the visitor.
type viewTracker struct {
	analytics cardAnalytics
	timeout   time.Duration
	logger    *zap.Logger
	now       func() time.Time
	wg        sync.WaitGroup
}

func newViewTracker(analytics cardAnalytics, timeout time.Duration, logger *zap.Logger) *viewTracker {
	return &viewTracker{
		analytics: analytics,
		timeout:   timeout,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Track queues one event of the given type.
func (t *viewTracker) Track(eventType string, event service.CardEvent) {
	if t == nil || t.analytics == nil {
		return
	}

	now := t.now()
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()

		var err error
		switch eventType {
		case db.EventVCardDownload:
			_, err = t.analytics.RecordDownload(ctx, event, now)
		default:
			_, err = t.analytics.RecordProfileView(ctx, event, now)
		}
		if err != nil {
			metrics.ObserveAnalyticsFailure(eventType)
			t.logger.Warn("card analytics dropped",
				zap.String("event", eventType),
				zap.String("profile_id", event.ProfileID),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every queued event has been written or dropped.
func (t *viewTracker) Wait() {
	if t == nil {
		return
	}
	t.wg.Wait()
}
