package card

import "github.com/tapcard/internal/theme"

// Layout is the arrangement of card sections, selected by layout_type.
type Layout struct {
	Name          string `json:"name"`
	ShowCover     bool   `json:"show_cover"`
	OverlapAvatar bool   `json:"overlap_avatar"`
	Centered      bool   `json:"centered"`
	SocialColumns int    `json:"social_columns"`
}

var (
	layoutModern = Layout{Name: theme.LayoutModern, ShowCover: true, OverlapAvatar: true, Centered: true, SocialColumns: 4}
	layoutPlain  = Layout{Name: "classic", ShowCover: false, OverlapAvatar: false, Centered: false, SocialColumns: 3}
)

// LayoutFor returns the arrangement for a layout type. Only "modern" has
// its own arrangement; every other value gets the plain one.
func LayoutFor(layoutType string) Layout {
	if (theme.Theme{LayoutType: layoutType}).IsModern() {
		return layoutModern
	}
	return layoutPlain
}
