package theme

import (
	"fmt"
	"strings"
)

const (
	IconStyleCircle  = "circle"
	IconStyleSquare  = "square"
	IconStyleRounded = "rounded"

	LayoutModern = "modern"
)

// Theme is the fully resolved set of display properties for one render.
type Theme struct {
	PrimaryColor     string `json:"primary_color"`
	SecondaryColor   string `json:"secondary_color"`
	BackgroundColor  string `json:"background_color"`
	TextColor        string `json:"text_color"`
	ShowProfileImage bool   `json:"show_profile_image"`
	IconStyle        string `json:"icon_style"`
	LayoutType       string `json:"layout_type"`
	FontFamily       string `json:"font_family"`
	SeparatorColor   string `json:"separator_color"`
	EnableAnimations bool   `json:"enable_animations"`
}

// Overrides carries optional values for every themable field.
// A nil pointer means "not set"; a non-nil pointer is honored even when it
// points at false or an empty string.
type Overrides struct {
	PrimaryColor     *string
	SecondaryColor   *string
	BackgroundColor  *string
	TextColor        *string
	ShowProfileImage *bool
	IconStyle        *string
	LayoutType       *string
	FontFamily       *string
	SeparatorColor   *string
}

// SystemDefaults returns the hard-coded fallback theme.
func SystemDefaults() Theme {
	return Theme{
		PrimaryColor:     "#6a11cb",
		SecondaryColor:   "#2575fc",
		BackgroundColor:  "#ffffff",
		TextColor:        "#333333",
		ShowProfileImage: true,
		IconStyle:        IconStyleCircle,
		LayoutType:       LayoutModern,
		FontFamily:       "system-ui, sans-serif",
		SeparatorColor:   "#e0e0e0",
		EnableAnimations: true,
	}
}

// Resolve merges profile overrides, an optional template and the defaults.
// Each field is resolved on its own: profile, then template, then default.
func Resolve(profile Overrides, template *Overrides, defaults Theme) Theme {
	var tpl Overrides
	if template != nil {
		tpl = *template
	}

	return Theme{
		PrimaryColor:     pick(profile.PrimaryColor, tpl.PrimaryColor, defaults.PrimaryColor),
		SecondaryColor:   pick(profile.SecondaryColor, tpl.SecondaryColor, defaults.SecondaryColor),
		BackgroundColor:  pick(profile.BackgroundColor, tpl.BackgroundColor, defaults.BackgroundColor),
		TextColor:        pick(profile.TextColor, tpl.TextColor, defaults.TextColor),
		ShowProfileImage: pick(profile.ShowProfileImage, tpl.ShowProfileImage, defaults.ShowProfileImage),
		IconStyle:        pick(profile.IconStyle, tpl.IconStyle, defaults.IconStyle),
		LayoutType:       pick(profile.LayoutType, tpl.LayoutType, defaults.LayoutType),
		FontFamily:       pick(profile.FontFamily, tpl.FontFamily, defaults.FontFamily),
		SeparatorColor:   pick(profile.SeparatorColor, tpl.SeparatorColor, defaults.SeparatorColor),
		EnableAnimations: defaults.EnableAnimations,
	}
}

func pick[T any](profile, template *T, fallback T) T {
	if profile != nil {
		return *profile
	}
	if template != nil {
		return *template
	}
	return fallback
}

// IsModern reports whether the resolved layout uses the cover-banner arrangement.
func (t Theme) IsModern() bool {
	return strings.EqualFold(strings.TrimSpace(t.LayoutType), LayoutModern)
}

// Style returns the CSS custom properties for the card root element.
// The values are passed down explicitly to the template.
func (t Theme) Style() string {
	declarations := []string{
		fmt.Sprintf("--card-primary: %s", cssValue(t.PrimaryColor)),
		fmt.Sprintf("--card-secondary: %s", cssValue(t.SecondaryColor)),
		fmt.Sprintf("--card-background: %s", cssValue(t.BackgroundColor)),
		fmt.Sprintf("--card-text: %s", cssValue(t.TextColor)),
		fmt.Sprintf("--card-separator: %s", cssValue(t.SeparatorColor)),
		fmt.Sprintf("--card-on-primary: %s", ContrastText(t.PrimaryColor)),
		fmt.Sprintf("font-family: %s", cssValue(t.FontFamily)),
		fmt.Sprintf("background-color: %s", cssValue(t.BackgroundColor)),
		fmt.Sprintf("color: %s", cssValue(t.TextColor)),
	}
	return strings.Join(declarations, "; ")
}

// Gradient returns the header banner background, primary to secondary.
func (t Theme) Gradient() string {
	secondary := t.SecondaryColor
	if secondary == "" {
		secondary = t.PrimaryColor
	}
	return fmt.Sprintf("linear-gradient(to right, %s, %s)", cssValue(t.PrimaryColor), cssValue(secondary))
}

// cssValue drops characters that could terminate a declaration or the attribute.
func cssValue(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}
