package handler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/service"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAnalytics struct {
	mu        sync.Mutex
	views     []service.CardEvent
	downloads []service.CardEvent
	err       error
}

func (f *fakeAnalytics) RecordProfileView(ctx context.Context, event service.CardEvent, now time.Time) (*db.CardStatistic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.views = append(f.views, event)
	return &db.CardStatistic{ProfileID: event.ProfileID, Views: uint64(len(f.views))}, nil
}

func (f *fakeAnalytics) RecordDownload(ctx context.Context, event service.CardEvent, now time.Time) (*db.CardStatistic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.downloads = append(f.downloads, event)
	return &db.CardStatistic{ProfileID: event.ProfileID, Downloads: uint64(len(f.downloads))}, nil
}

func TestViewTrackerDispatchesByEventType(t *testing.T) {
	analytics := &fakeAnalytics{}
	tracker := newViewTracker(analytics, time.Second, zap.NewNop())

	tracker.Track(db.EventView, service.CardEvent{ProfileID: "jane", VisitorID: "v1"})
	tracker.Track(db.EventView, service.CardEvent{ProfileID: "jane", VisitorID: "v2"})
	tracker.Track(db.EventVCardDownload, service.CardEvent{ProfileID: "jane"})
	tracker.Wait()

	if len(analytics.views) != 2 || len(analytics.downloads) != 1 {
		t.Fatalf("expected 2 views and 1 download, got %d and %d", len(analytics.views), len(analytics.downloads))
	}
}

func TestViewTrackerLogsAndDropsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	analytics := &fakeAnalytics{err: errors.New("database is locked")}
	tracker := newViewTracker(analytics, time.Second, zap.New(core))

	tracker.Track(db.EventView, service.CardEvent{ProfileID: "jane", VisitorID: "v1"})
	tracker.Wait()

	entries := logs.FilterMessage("card analytics dropped").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["profile_id"]; got != "jane" {
		t.Fatalf("expected profile id in log fields, got %v", got)
	}
}

func TestNilTrackerIsInert(t *testing.T) {
	var tracker *viewTracker
	tracker.Track(db.EventView, service.CardEvent{ProfileID: "jane"})
	tracker.Wait()
}
