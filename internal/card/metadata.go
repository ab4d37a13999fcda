package card

import "strings"

const (
	defaultTitleName = "Contact"
	titleSuffix      = " | Digital Business Card"
)

// Metadata carries the document head values for a card page.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	Image       string `json:"image,omitempty"`
	OGType      string `json:"og_type"`
	TwitterCard string `json:"twitter_card"`
}

// MetadataFor derives the page title, description and social preview tags.
func MetadataFor(in Input, canonicalURL string) Metadata {
	name := strings.TrimSpace(in.Name)
	title := name
	if title == "" {
		title = defaultTitleName
	}

	description := strings.TrimSpace(in.Bio)
	if description == "" {
		who := name
		if who == "" {
			who = "this contact"
		}
		description = "Connect with " + who
	}

	twitterCard := "summary"
	if in.ProfilePhotoURL != "" {
		twitterCard = "summary_large_image"
	}

	return Metadata{
		Title:       title + titleSuffix,
		Description: description,
		URL:         canonicalURL,
		Image:       in.ProfilePhotoURL,
		OGType:      "profile",
		TwitterCard: twitterCard,
	}
}
