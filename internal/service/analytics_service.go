package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/tapcard/internal/db"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxSourceLength = 64

// CardEvent describes one tracked interaction with a card.
type CardEvent struct {
	ProfileID string
	VisitorID string
	Source    string
	ClientIP  string
}

// AnalyticsService keeps card view and download counters.
type AnalyticsService struct {
	db   *gorm.DB
	salt string
}

// NewAnalyticsService creates an AnalyticsService. The salt keys the client
// address hash so raw addresses are never stored.
func NewAnalyticsService(gdb *gorm.DB, salt string) *AnalyticsService {
	return &AnalyticsService{db: gdb, salt: salt}
}

// RecordProfileView counts a view, deduplicating unique visitors per profile,
// appends a view event and returns the updated counters.
func (s *AnalyticsService) RecordProfileView(ctx context.Context, event CardEvent, now time.Time) (*db.CardStatistic, error) {
	if event.ProfileID == "" || event.VisitorID == "" {
		return nil, errors.New("invalid visitor or profile id")
	}

	var stats db.CardStatistic

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		visit := db.CardVisit{
			ProfileID:    event.ProfileID,
			VisitorID:    event.VisitorID,
			LastViewedAt: now,
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&visit)
		if insert.Error != nil {
			return insert.Error
		}

		isNewVisitor := insert.RowsAffected == 1
		if !isNewVisitor {
			if err := tx.Model(&db.CardVisit{}).
				Where("profile_id = ? AND visitor_id = ?", event.ProfileID, event.VisitorID).
				Update("last_viewed_at", now).Error; err != nil {
				return err
			}
		}

		if err := lockStatistic(tx, event.ProfileID, &stats); err != nil {
			return err
		}

		stats.Views++
		if isNewVisitor {
			stats.UniqueVisitors++
		}
		stats.LastViewedAt = now

		if err := tx.Save(&stats).Error; err != nil {
			return err
		}

		return tx.Create(s.newEvent(event, db.EventView, now)).Error
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}

// RecordDownload counts a vCard download and appends a download event.
func (s *AnalyticsService) RecordDownload(ctx context.Context, event CardEvent, now time.Time) (*db.CardStatistic, error) {
	if event.ProfileID == "" {
		return nil, errors.New("invalid profile id")
	}

	var stats db.CardStatistic

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockStatistic(tx, event.ProfileID, &stats); err != nil {
			return err
		}

		stats.Downloads++
		if err := tx.Save(&stats).Error; err != nil {
			return err
		}

		return tx.Create(s.newEvent(event, db.EventVCardDownload, now)).Error
	}); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Statistic returns the counters for a profile; a profile that was never
// viewed reports zero counters.
func (s *AnalyticsService) Statistic(ctx context.Context, profileID string) (db.CardStatistic, error) {
	var stats db.CardStatistic
	err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&stats).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.CardStatistic{ProfileID: profileID}, nil
	case err != nil:
		return stats, err
	}
	return stats, nil
}

// SourceCounts groups view events of a profile by their source tag.
func (s *AnalyticsService) SourceCounts(ctx context.Context, profileID string) (map[string]int64, error) {
	var rows []struct {
		Source string
		Total  int64
	}
	if err := s.db.WithContext(ctx).Model(&db.AnalyticsEvent{}).
		Select("source, COUNT(*) AS total").
		Where("profile_id = ? AND event_type = ?", profileID, db.EventView).
		Group("source").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Source] = row.Total
	}
	return counts, nil
}

func lockStatistic(tx *gorm.DB, profileID string, stats *db.CardStatistic) error {
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("profile_id = ?", profileID).
		First(stats)

	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		*stats = db.CardStatistic{ProfileID: profileID}
		return tx.Create(stats).Error
	case result.Error != nil:
		return result.Error
	}
	return nil
}

func (s *AnalyticsService) newEvent(event CardEvent, eventType string, now time.Time) *db.AnalyticsEvent {
	return &db.AnalyticsEvent{
		ProfileID:  event.ProfileID,
		EventType:  eventType,
		Source:     NormalizeSource(event.Source),
		VisitorID:  event.VisitorID,
		ClientHash: s.ClientHash(event.ClientIP),
		CreatedAt:  now,
	}
}

// NormalizeSource trims and lowercases a source tag, defaulting to "direct".
func NormalizeSource(source string) string {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return db.DefaultEventSource
	}
	if len(source) > maxSourceLength {
		source = source[:maxSourceLength]
	}
	return source
}

// ClientHash returns a salted blake2b digest of the client address.
func (s *AnalyticsService) ClientHash(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(s.salt + "|" + ip))
	return hex.EncodeToString(sum[:])
}
