package theme

import (
	"strings"
	"testing"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func TestResolveWithoutOverridesReturnsDefaults(t *testing.T) {
	defaults := SystemDefaults()

	got := Resolve(Overrides{}, nil, defaults)
	if got != defaults {
		t.Fatalf("expected defaults %+v, got %+v", defaults, got)
	}
}

func TestResolvePrecedencePerField(t *testing.T) {
	template := &Overrides{
		PrimaryColor: strPtr("#111111"),
		FontFamily:   strPtr("Georgia, serif"),
		IconStyle:    strPtr(IconStyleSquare),
	}
	profile := Overrides{
		PrimaryColor: strPtr("#ff0000"),
	}

	got := Resolve(profile, template, SystemDefaults())

	if got.PrimaryColor != "#ff0000" {
		t.Fatalf("expected profile primary color, got %q", got.PrimaryColor)
	}
	if got.FontFamily != "Georgia, serif" {
		t.Fatalf("expected template font family, got %q", got.FontFamily)
	}
	if got.IconStyle != IconStyleSquare {
		t.Fatalf("expected template icon style, got %q", got.IconStyle)
	}
	if got.SecondaryColor != "#2575fc" {
		t.Fatalf("expected default secondary color, got %q", got.SecondaryColor)
	}
	if !got.EnableAnimations {
		t.Fatal("expected animations to default to enabled")
	}
}

func TestResolveHonorsExplicitFalseAndEmpty(t *testing.T) {
	template := &Overrides{ShowProfileImage: boolPtr(true), SecondaryColor: strPtr("#abcdef")}

	got := Resolve(Overrides{ShowProfileImage: boolPtr(false), SecondaryColor: strPtr("")}, template, SystemDefaults())
	if got.ShowProfileImage {
		t.Fatal("explicit false override must not be treated as absent")
	}
	if got.SecondaryColor != "" {
		t.Fatalf("explicit empty override must win, got %q", got.SecondaryColor)
	}

	got = Resolve(Overrides{}, &Overrides{ShowProfileImage: boolPtr(false)}, SystemDefaults())
	if got.ShowProfileImage {
		t.Fatal("template false must be honored when profile has no override")
	}
}

func TestResolveSingleOverrideDoesNotInterfere(t *testing.T) {
	template := &Overrides{
		PrimaryColor:    strPtr("#010101"),
		BackgroundColor: strPtr("#020202"),
		LayoutType:      strPtr("classic"),
	}
	base := Resolve(Overrides{}, template, SystemDefaults())

	cases := []struct {
		name   string
		mutate func(*Overrides)
		check  func(before, after Theme) Theme
	}{
		{
			name:   "primary",
			mutate: func(o *Overrides) { o.PrimaryColor = strPtr("#999999") },
			check:  func(before, after Theme) Theme { before.PrimaryColor = after.PrimaryColor; return before },
		},
		{
			name:   "show image",
			mutate: func(o *Overrides) { o.ShowProfileImage = boolPtr(false) },
			check:  func(before, after Theme) Theme { before.ShowProfileImage = after.ShowProfileImage; return before },
		},
		{
			name:   "layout",
			mutate: func(o *Overrides) { o.LayoutType = strPtr(LayoutModern) },
			check:  func(before, after Theme) Theme { before.LayoutType = after.LayoutType; return before },
		},
		{
			name:   "separator",
			mutate: func(o *Overrides) { o.SeparatorColor = strPtr("#000000") },
			check:  func(before, after Theme) Theme { before.SeparatorColor = after.SeparatorColor; return before },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var profile Overrides
			tc.mutate(&profile)
			after := Resolve(profile, template, SystemDefaults())
			if after == base {
				t.Fatal("expected override to change the resolved theme")
			}
			if expected := tc.check(base, after); expected != after {
				t.Fatalf("override leaked into other fields: base=%+v after=%+v", base, after)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	profile := Overrides{TextColor: strPtr("#444444")}
	template := &Overrides{IconStyle: strPtr(IconStyleRounded)}

	first := Resolve(profile, template, SystemDefaults())
	second := Resolve(profile, template, SystemDefaults())
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestContrastText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "#FFFFFF", expected: TextBlack},
		{input: "#000000", expected: TextWhite},
		{input: "#808080", expected: TextWhite},
		{input: "#818181", expected: TextBlack},
		{input: "fff", expected: TextBlack},
		{input: "#000", expected: TextWhite},
		{input: "#6a11cb", expected: TextWhite},
		{input: "#ffeb3b", expected: TextBlack},
		{input: "", expected: TextWhite},
		{input: "#12345", expected: TextWhite},
		{input: "#gggggg", expected: TextWhite},
		{input: "white", expected: TextWhite},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ContrastText(tt.input); got != tt.expected {
				t.Fatalf("ContrastText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStyleThreadsThemeValues(t *testing.T) {
	style := SystemDefaults().Style()
	for _, fragment := range []string{"--card-primary: #6a11cb", "--card-on-primary: #ffffff", "font-family: system-ui, sans-serif"} {
		if !strings.Contains(style, fragment) {
			t.Fatalf("expected style to contain %q, got %q", fragment, style)
		}
	}
}

func TestIsModern(t *testing.T) {
	if !SystemDefaults().IsModern() {
		t.Fatal("default layout should be modern")
	}
	if (Theme{LayoutType: "classic"}).IsModern() {
		t.Fatal("classic layout should not be modern")
	}
}

func TestGradientFallsBackToPrimary(t *testing.T) {
	th := SystemDefaults()
	if got := th.Gradient(); got != "linear-gradient(to right, #6a11cb, #2575fc)" {
		t.Fatalf("unexpected gradient %q", got)
	}

	th.SecondaryColor = ""
	if got := th.Gradient(); got != "linear-gradient(to right, #6a11cb, #6a11cb)" {
		t.Fatalf("expected primary on both ends, got %q", got)
	}
}

func TestStyleStripsDeclarationBreakers(t *testing.T) {
	th := SystemDefaults()
	th.PrimaryColor = "red; background:url(x)"
	th.FontFamily = "Arial}</style>"

	style := th.Style()
	if strings.Contains(style, "red; background") {
		t.Fatalf("expected semicolon to be dropped, got %q", style)
	}
	if strings.ContainsAny(style, "{}<>") {
		t.Fatalf("expected braces and angle brackets to be dropped, got %q", style)
	}
	if !strings.Contains(style, "--card-primary: red background:url(x)") {
		t.Fatalf("expected sanitized primary value, got %q", style)
	}
}
