package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tapcard/internal/card"
	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/metrics"
	"github.com/tapcard/internal/theme"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrProfileNotFound is returned when no profile has the requested id.
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileService reads card records: profiles, their social links and templates.
type ProfileService struct {
	db     *gorm.DB
	cache  BundleCache
	logger *zap.Logger
}

// NewProfileService constructs a ProfileService without a cache.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb, logger: zap.NewNop()}
}

// WithCache enables read-through caching of whole bundles.
func (s *ProfileService) WithCache(cache BundleCache) *ProfileService {
	s.cache = cache
	return s
}

// WithLogger sets the logger used for cache degradation warnings.
func (s *ProfileService) WithLogger(logger *zap.Logger) *ProfileService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Bundle is everything needed to render one card.
type Bundle struct {
	Profile     db.Profile      `json:"profile"`
	SocialLinks []db.SocialLink `json:"social_links"`
	Template    *db.Template    `json:"template,omitempty"`
}

// GetProfile fetches a profile by its id.
func (s *ProfileService) GetProfile(ctx context.Context, id string) (*db.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProfileNotFound
	}

	var profile db.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// GetSocialLinks returns the profile's links ordered by display order.
// The result is never nil.
func (s *ProfileService) GetSocialLinks(ctx context.Context, profileID string) ([]db.SocialLink, error) {
	links := make([]db.SocialLink, 0)
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("display_order ASC, id ASC").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	return links, nil
}

// GetTemplate returns the template with the given id, or nil when the id is
// empty or no such template exists.
func (s *ProfileService) GetTemplate(ctx context.Context, id string) (*db.Template, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	var tpl db.Template
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return &tpl, nil
}

// LoadBundle loads the profile, its links and its template. Cache failures
// are logged and fall through to the database.
func (s *ProfileService) LoadBundle(ctx context.Context, id string) (*Bundle, error) {
	if s.cache != nil {
		cached, err := s.cache.GetBundle(ctx, id)
		switch {
		case err != nil:
			metrics.ObserveCacheLookup("error")
			s.logger.Warn("card cache read failed", zap.String("profile_id", id), zap.Error(err))
		case cached != nil:
			metrics.ObserveCacheLookup("hit")
			return cached, nil
		default:
			metrics.ObserveCacheLookup("miss")
		}
	}

	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	links, err := s.GetSocialLinks(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	var templateID string
	if profile.TemplateID != nil {
		templateID = *profile.TemplateID
	}
	tpl, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{Profile: *profile, SocialLinks: links, Template: tpl}
	if s.cache != nil {
		if err := s.cache.SetBundle(ctx, bundle); err != nil {
			s.logger.Warn("card cache write failed", zap.String("profile_id", id), zap.Error(err))
		}
	}
	return bundle, nil
}

// Theme resolves the bundle's display settings against the defaults.
func (b *Bundle) Theme(defaults theme.Theme) theme.Theme {
	var tpl *theme.Overrides
	if b.Template != nil {
		overrides := b.Template.ThemeOverrides()
		tpl = &overrides
	}
	return theme.Resolve(b.Profile.ThemeOverrides(), tpl, defaults)
}

// CardInput converts the bundle into the renderer's input.
func (b *Bundle) CardInput() card.Input {
	links := make([]card.SocialLink, 0, len(b.SocialLinks))
	for _, link := range b.SocialLinks {
		links = append(links, card.SocialLink{
			Platform:     link.Platform,
			URL:          link.URL,
			DisplayOrder: link.DisplayOrder,
		})
	}

	p := b.Profile
	return card.Input{
		ProfileID:       p.ID,
		Name:            p.Name,
		JobTitle:        p.JobTitle,
		Bio:             p.Bio,
		Company:         p.Company,
		Phone:           p.Phone,
		Email:           p.Email,
		Website:         p.Website,
		MapAddress:      p.MapAddress,
		ProfilePhotoURL: p.ProfilePhotoURL,
		CoverPhotoURL:   p.CoverPhotoURL,
		SocialLinks:     links,
	}
}
