package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tapcard/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func setupServiceTestDB(t *testing.T) func() {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func seedJaneDoe(t *testing.T) {
	t.Helper()

	profile := db.Profile{ID: "jane", Name: "Jane Doe", Phone: "555-0100", Email: "jane@x.com"}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	link := db.SocialLink{ProfileID: "jane", Platform: "GitHub", URL: "github.com/jd", DisplayOrder: 1}
	if err := db.DB.Create(&link).Error; err != nil {
		t.Fatalf("failed to create social link: %v", err)
	}
}
