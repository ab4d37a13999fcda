package card

import (
	"strings"

	"github.com/tapcard/internal/theme"
)

// Shape is the border treatment of a social icon container.
type Shape struct {
	Name   string `json:"name"`
	Class  string `json:"class"`
	Radius string `json:"radius"`
}

var (
	ShapeCircle  = Shape{Name: theme.IconStyleCircle, Class: "rounded-full", Radius: "50%"}
	ShapeSquare  = Shape{Name: theme.IconStyleSquare, Class: "rounded-xl", Radius: "0.75rem"}
	ShapeRounded = Shape{Name: theme.IconStyleRounded, Class: "rounded-2xl", Radius: "1.25rem"}
)

// IconShape maps an icon style onto a shape; unknown styles are circular.
func IconShape(style string) Shape {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case theme.IconStyleSquare:
		return ShapeSquare
	case theme.IconStyleRounded:
		return ShapeRounded
	default:
		return ShapeCircle
	}
}
