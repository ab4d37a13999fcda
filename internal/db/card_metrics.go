package db

import "time"

const (
	EventView          = "view"
	EventVCardDownload = "vcard_download"

	DefaultEventSource = "direct"
)

// CardStatistic aggregates per-profile view and download counters.
type CardStatistic struct {
	ID             uint   `gorm:"primaryKey"`
	ProfileID      string `gorm:"size:64;uniqueIndex"`
	Views          uint64 `gorm:"default:0"`
	UniqueVisitors uint64 `gorm:"default:0"`
	Downloads      uint64 `gorm:"default:0"`
	LastViewedAt   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName keeps the original analytics table name.
func (CardStatistic) TableName() string {
	return "vcard_analytics"
}

// CardVisit records one visitor per profile for unique visitor counting.
type CardVisit struct {
	ID           uint   `gorm:"primaryKey"`
	ProfileID    string `gorm:"size:64;uniqueIndex:idx_card_visit_profile_visitor"`
	VisitorID    string `gorm:"size:64;uniqueIndex:idx_card_visit_profile_visitor"`
	LastViewedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName keeps the table name stable.
func (CardVisit) TableName() string {
	return "card_visits"
}

// AnalyticsEvent is the append-only event log behind the counters.
type AnalyticsEvent struct {
	ID         uint   `gorm:"primaryKey"`
	ProfileID  string `gorm:"size:64;index;not null"`
	EventType  string `gorm:"size:32;index;not null"`
	Source     string `gorm:"size:64;default:direct"`
	VisitorID  string `gorm:"size:64"`
	ClientHash string `gorm:"size:64"`
	CreatedAt  time.Time
}

// TableName keeps the table name stable.
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
