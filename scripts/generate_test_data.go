package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tapcard/internal/config"
	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/service"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

// Demo card generator.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if err := db.Init(cfg.DBDriver, cfg.DatabaseDSN); err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	fmt.Println("seeding demo cards...")

	if err := createDemoTemplates(db.DB); err != nil {
		log.Fatal("failed to seed templates: ", err)
	}
	if err := createDemoProfiles(db.DB); err != nil {
		log.Fatal("failed to seed profiles: ", err)
	}

	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := invalidateDemoCards(ctx, service.NewRedisBundleCache(rdb, cfg.CardCacheTTL))
		cancel()
		rdb.Close()
		if err != nil {
			log.Printf("cached cards were not invalidated, they expire after %s: %v", cfg.CardCacheTTL, err)
		}
	}

	fmt.Println("demo cards ready:")
	for _, p := range demoProfiles() {
		fmt.Printf("  %s/v/%s\n", cfg.PublicBaseURL, p.ID)
	}
}

func demoTemplates() []db.Template {
	return []db.Template{
		{
			ID:              "midnight",
			Name:            "Midnight",
			PrimaryColor:    strPtr("#0f2027"),
			SecondaryColor:  strPtr("#2c5364"),
			BackgroundColor: strPtr("#121212"),
			TextColor:       strPtr("#f5f5f5"),
			IconStyle:       strPtr("rounded"),
			SeparatorColor:  strPtr("#2a2a2a"),
		},
		{
			ID:               "paper",
			Name:             "Paper",
			PrimaryColor:     strPtr("#ff6b6b"),
			BackgroundColor:  strPtr("#ffffff"),
			LayoutType:       strPtr("classic"),
			IconStyle:        strPtr("square"),
			ShowProfileImage: boolPtr(false),
			FontFamily:       strPtr("Georgia, serif"),
		},
	}
}

func demoProfiles() []db.Profile {
	return []db.Profile{
		{
			ID:         "jane",
			Name:       "Jane Doe",
			JobTitle:   "Product Designer",
			Company:    "Acme Studio",
			Bio:        "Designing **calm** software.\nSay hi at any meetup.",
			Phone:      "+1 415 555 0100",
			Email:      "jane@example.com",
			Website:    "janedoe.design",
			MapAddress: "1 Market St, San Francisco",
		},
		{
			ID:                 "kai",
			Name:               "Kai Tanaka",
			JobTitle:           "Backend Engineer",
			Phone:              "+81 3-1234-5678",
			Email:              "kai@example.com",
			TemplateID:         strPtr("midnight"),
			CustomPrimaryColor: strPtr("#00b894"),
		},
		{
			ID:         "olive",
			Name:       "Olive Martin",
			JobTitle:   "Florist",
			Company:    "Olive & Stem",
			Website:    "https://olive-stem.example.com",
			TemplateID: strPtr("paper"),
		},
	}
}

func demoSocialLinks() []db.SocialLink {
	return []db.SocialLink{
		{ProfileID: "jane", Platform: "LinkedIn", URL: "linkedin.com/in/janedoe", DisplayOrder: 1},
		{ProfileID: "jane", Platform: "Dribbble", URL: "dribbble.com/janedoe", DisplayOrder: 2},
		{ProfileID: "jane", Platform: "Instagram", URL: "instagram.com/janedoe", DisplayOrder: 3},
		{ProfileID: "kai", Platform: "GitHub", URL: "github.com/kai", DisplayOrder: 1},
		{ProfileID: "kai", Platform: "X", URL: "x.com/kai", DisplayOrder: 2},
		{ProfileID: "olive", Platform: "Pinterest", URL: "pinterest.com/olivestem", DisplayOrder: 1},
	}
}

// createDemoTemplates upserts the demo templates by id.
func createDemoTemplates(gdb *gorm.DB) error {
	templates := demoTemplates()
	if err := gdb.Clauses(clause.OnConflict{UpdateAll: true}).Create(&templates).Error; err != nil {
		return err
	}
	fmt.Printf("templates: %d\n", len(templates))
	return nil
}

// createDemoProfiles upserts the demo profiles and replaces their social links.
func createDemoProfiles(gdb *gorm.DB) error {
	profiles := demoProfiles()
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&profiles).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id IN ?", ids).Delete(&db.SocialLink{}).Error; err != nil {
			return err
		}
		links := demoSocialLinks()
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		fmt.Printf("profiles: %d, social links: %d\n", len(profiles), len(links))
		return nil
	})
}

// invalidateDemoCards drops cached bundles of the reseeded profiles.
func invalidateDemoCards(ctx context.Context, cache service.BundleCache) error {
	for _, p := range demoProfiles() {
		if err := cache.InvalidateBundle(ctx, p.ID); err != nil {
			return fmt.Errorf("invalidate %s: %w", p.ID, err)
		}
	}
	fmt.Printf("card cache cleared for %d profiles\n", len(demoProfiles()))
	return nil
}
