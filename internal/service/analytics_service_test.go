package service

import (
	"context"
	"testing"
	"time"

	"github.com/tapcard/internal/db"
)

func TestRecordProfileViewCounts(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnalyticsService(db.DB, "salt")
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	stats, err := svc.RecordProfileView(ctx, CardEvent{ProfileID: "jane", VisitorID: "visitor-1"}, base)
	if err != nil {
		t.Fatalf("first view failed: %v", err)
	}
	if stats.Views != 1 || stats.UniqueVisitors != 1 {
		t.Fatalf("expected views=1 uv=1, got views=%d uv=%d", stats.Views, stats.UniqueVisitors)
	}

	stats, err = svc.RecordProfileView(ctx, CardEvent{ProfileID: "jane", VisitorID: "visitor-1", Source: "QR"}, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("repeat view failed: %v", err)
	}
	if stats.Views != 2 || stats.UniqueVisitors != 1 {
		t.Fatalf("expected views=2 uv=1, got views=%d uv=%d", stats.Views, stats.UniqueVisitors)
	}

	stats, err = svc.RecordProfileView(ctx, CardEvent{ProfileID: "jane", VisitorID: "visitor-2", Source: "qr"}, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("second visitor failed: %v", err)
	}
	if stats.Views != 3 || stats.UniqueVisitors != 2 {
		t.Fatalf("expected views=3 uv=2, got views=%d uv=%d", stats.Views, stats.UniqueVisitors)
	}
	if !stats.LastViewedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected last viewed at %v", stats.LastViewedAt)
	}

	counts, err := svc.SourceCounts(ctx, "jane")
	if err != nil {
		t.Fatalf("source counts failed: %v", err)
	}
	if counts["direct"] != 1 || counts["qr"] != 2 {
		t.Fatalf("unexpected source counts %v", counts)
	}
}

func TestRecordProfileViewRejectsMissingIDs(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnalyticsService(db.DB, "salt")
	if _, err := svc.RecordProfileView(context.Background(), CardEvent{ProfileID: "jane"}, time.Now()); err == nil {
		t.Fatal("expected error for missing visitor id")
	}
}

func TestRecordDownload(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnalyticsService(db.DB, "salt")
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	if _, err := svc.RecordDownload(ctx, CardEvent{ProfileID: "jane", ClientIP: "203.0.113.7"}, now); err != nil {
		t.Fatalf("download failed: %v", err)
	}
	stats, err := svc.RecordDownload(ctx, CardEvent{ProfileID: "jane"}, now)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if stats.Downloads != 2 || stats.Views != 0 {
		t.Fatalf("expected downloads=2 views=0, got %+v", stats)
	}

	var event db.AnalyticsEvent
	if err := db.DB.Where("event_type = ?", db.EventVCardDownload).Order("id ASC").First(&event).Error; err != nil {
		t.Fatalf("expected download event: %v", err)
	}
	if event.ClientHash == "" || event.ClientHash == "203.0.113.7" {
		t.Fatalf("expected hashed client address, got %q", event.ClientHash)
	}
	if event.Source != db.DefaultEventSource {
		t.Fatalf("expected default source, got %q", event.Source)
	}
}

func TestStatisticForUnviewedProfile(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	stats, err := NewAnalyticsService(db.DB, "").Statistic(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("statistic failed: %v", err)
	}
	if stats.Views != 0 || stats.ProfileID != "nobody" {
		t.Fatalf("unexpected statistic %+v", stats)
	}
}

func TestClientHashIsSaltedAndStable(t *testing.T) {
	a := NewAnalyticsService(nil, "one")
	b := NewAnalyticsService(nil, "two")

	if a.ClientHash("198.51.100.1") != a.ClientHash("198.51.100.1") {
		t.Fatal("hash must be deterministic")
	}
	if a.ClientHash("198.51.100.1") == b.ClientHash("198.51.100.1") {
		t.Fatal("different salts must produce different hashes")
	}
	if len(a.ClientHash("198.51.100.1")) != 64 {
		t.Fatal("expected hex encoded 256-bit digest")
	}
	if a.ClientHash("") != "" {
		t.Fatal("empty address must hash to empty")
	}
}

func TestNormalizeSource(t *testing.T) {
	cases := map[string]string{
		"":         "direct",
		"  QR  ":   "qr",
		"LinkedIn": "linkedin",
	}
	for input, want := range cases {
		if got := NormalizeSource(input); got != want {
			t.Fatalf("NormalizeSource(%q): expected %q, got %q", input, want, got)
		}
	}
}
