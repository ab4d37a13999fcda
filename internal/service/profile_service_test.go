package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/theme"
)

func TestGetProfileNotFound(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewProfileService(db.DB)
	if _, err := svc.GetProfile(context.Background(), "missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.GetProfile(context.Background(), "  "); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for blank id, got %v", err)
	}
}

func TestGetSocialLinksOrderedAndNeverNil(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	links := []db.SocialLink{
		{ProfileID: "p1", Platform: "twitter", URL: "x.com/a", DisplayOrder: 2},
		{ProfileID: "p1", Platform: "github", URL: "github.com/a", DisplayOrder: 1},
		{ProfileID: "p1", Platform: "linkedin", URL: "linkedin.com/in/a", DisplayOrder: 1},
		{ProfileID: "p2", Platform: "facebook", URL: "fb.com/b", DisplayOrder: 0},
	}
	if err := db.DB.Create(&links).Error; err != nil {
		t.Fatalf("failed to create links: %v", err)
	}

	svc := NewProfileService(db.DB)
	got, err := svc.GetSocialLinks(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list links failed: %v", err)
	}
	want := []string{"github", "linkedin", "twitter"}
	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %d", len(want), len(got))
	}
	for i, platform := range want {
		if got[i].Platform != platform {
			t.Fatalf("position %d: expected %s, got %s", i, platform, got[i].Platform)
		}
	}

	empty, err := svc.GetSocialLinks(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list links failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestGetTemplateAbsent(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewProfileService(db.DB)
	for _, id := range []string{"", "missing"} {
		tpl, err := svc.GetTemplate(context.Background(), id)
		if err != nil || tpl != nil {
			t.Fatalf("GetTemplate(%q): expected nil template and error, got %v, %v", id, tpl, err)
		}
	}
}

func TestLoadBundleResolvesTemplateTheme(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	tpl := db.Template{ID: "night", Name: "Night", BackgroundColor: strPtr("#101010"), IconStyle: strPtr("square")}
	if err := db.DB.Create(&tpl).Error; err != nil {
		t.Fatalf("failed to create template: %v", err)
	}
	profile := db.Profile{
		ID:                     "sam",
		Name:                   "Sam",
		TemplateID:             strPtr("night"),
		CustomIconStyle:        strPtr("rounded"),
		CustomShowProfileImage: boolPtr(false),
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	bundle, err := NewProfileService(db.DB).LoadBundle(context.Background(), "sam")
	if err != nil {
		t.Fatalf("load bundle failed: %v", err)
	}
	if bundle.Template == nil || bundle.Template.ID != "night" {
		t.Fatalf("expected night template, got %+v", bundle.Template)
	}

	resolved := bundle.Theme(theme.SystemDefaults())
	if resolved.BackgroundColor != "#101010" {
		t.Fatalf("expected template background, got %q", resolved.BackgroundColor)
	}
	if resolved.IconStyle != "rounded" {
		t.Fatalf("expected profile icon style to win, got %q", resolved.IconStyle)
	}
	if resolved.ShowProfileImage {
		t.Fatal("expected explicit false to hide the photo")
	}
	if resolved.PrimaryColor != "#6a11cb" {
		t.Fatalf("expected default primary, got %q", resolved.PrimaryColor)
	}
}

func TestLoadBundleDanglingTemplateUsesDefaults(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	profile := db.Profile{ID: "lee", Name: "Lee", TemplateID: strPtr("gone")}
	if err := db.DB.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	bundle, err := NewProfileService(db.DB).LoadBundle(context.Background(), "lee")
	if err != nil {
		t.Fatalf("load bundle failed: %v", err)
	}
	if bundle.Template != nil {
		t.Fatalf("expected no template, got %+v", bundle.Template)
	}
	if got := bundle.Theme(theme.SystemDefaults()); got != theme.SystemDefaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestBundleCardInput(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()
	seedJaneDoe(t)

	bundle, err := NewProfileService(db.DB).LoadBundle(context.Background(), "jane")
	if err != nil {
		t.Fatalf("load bundle failed: %v", err)
	}

	in := bundle.CardInput()
	if in.ProfileID != "jane" || in.Name != "Jane Doe" || in.Phone != "555-0100" {
		t.Fatalf("unexpected card input %+v", in)
	}
	if len(in.SocialLinks) != 1 || in.SocialLinks[0].Platform != "GitHub" || in.SocialLinks[0].DisplayOrder != 1 {
		t.Fatalf("unexpected social links %+v", in.SocialLinks)
	}
}
