package db

import (
	"time"

	"github.com/tapcard/internal/theme"
)

// Profile is the stored business card record. The custom_* columns are
// nullable; a NULL column means the field is not overridden.
type Profile struct {
	ID                     string  `gorm:"primaryKey;size:64"`
	Name                   string  `gorm:"size:120"`
	JobTitle               string  `gorm:"size:120"`
	Bio                    string  `gorm:"type:text"`
	Company                string  `gorm:"size:120"`
	Phone                  string  `gorm:"size:40"`
	Email                  string  `gorm:"size:255"`
	Website                string  `gorm:"size:255"`
	MapAddress             string  `gorm:"size:255"`
	ProfilePhotoURL        string  `gorm:"size:512"`
	CoverPhotoURL          string  `gorm:"size:512"`
	TemplateID             *string `gorm:"size:64;index"`
	CustomPrimaryColor     *string `gorm:"size:32"`
	CustomSecondaryColor   *string `gorm:"size:32"`
	CustomBackgroundColor  *string `gorm:"size:32"`
	CustomTextColor        *string `gorm:"size:32"`
	CustomShowProfileImage *bool
	CustomIconStyle        *string `gorm:"size:20"`
	CustomLayoutType       *string `gorm:"size:20"`
	CustomFontFamily       *string `gorm:"size:120"`
	CustomSeparatorColor   *string `gorm:"size:32"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName keeps the table name stable.
func (Profile) TableName() string {
	return "profiles"
}

// ThemeOverrides returns the profile's custom_* columns as theme overrides.
func (p Profile) ThemeOverrides() theme.Overrides {
	return theme.Overrides{
		PrimaryColor:     p.CustomPrimaryColor,
		SecondaryColor:   p.CustomSecondaryColor,
		BackgroundColor:  p.CustomBackgroundColor,
		TextColor:        p.CustomTextColor,
		ShowProfileImage: p.CustomShowProfileImage,
		IconStyle:        p.CustomIconStyle,
		LayoutType:       p.CustomLayoutType,
		FontFamily:       p.CustomFontFamily,
		SeparatorColor:   p.CustomSeparatorColor,
	}
}

// SocialLink is one external profile reference shown in the social grid.
// Smaller DisplayOrder values come first.
type SocialLink struct {
	ID           uint   `gorm:"primaryKey"`
	ProfileID    string `gorm:"size:64;index;not null"`
	Platform     string `gorm:"size:50;not null"`
	URL          string `gorm:"size:512"`
	DisplayOrder int    `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName keeps the table name stable.
func (SocialLink) TableName() string {
	return "social_links"
}

// Template is a named, reusable set of theme values.
type Template struct {
	ID               string  `gorm:"primaryKey;size:64"`
	Name             string  `gorm:"size:120"`
	PrimaryColor     *string `gorm:"size:32"`
	SecondaryColor   *string `gorm:"size:32"`
	BackgroundColor  *string `gorm:"size:32"`
	TextColor        *string `gorm:"size:32"`
	ShowProfileImage *bool
	IconStyle        *string `gorm:"size:20"`
	LayoutType       *string `gorm:"size:20"`
	FontFamily       *string `gorm:"size:120"`
	SeparatorColor   *string `gorm:"size:32"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName keeps the table name stable.
func (Template) TableName() string {
	return "templates"
}

// ThemeOverrides returns the template's columns as theme overrides.
func (t Template) ThemeOverrides() theme.Overrides {
	return theme.Overrides{
		PrimaryColor:     t.PrimaryColor,
		SecondaryColor:   t.SecondaryColor,
		BackgroundColor:  t.BackgroundColor,
		TextColor:        t.TextColor,
		ShowProfileImage: t.ShowProfileImage,
		IconStyle:        t.IconStyle,
		LayoutType:       t.LayoutType,
		FontFamily:       t.FontFamily,
		SeparatorColor:   t.SeparatorColor,
	}
}
