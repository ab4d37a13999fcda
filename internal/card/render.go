package card

import (
	"cmp"
	"html/template"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/tapcard/internal/theme"
	"github.com/tapcard/internal/view"
)

// LoadingDelay is how long the spinner stays visible after the page mounts.
const LoadingDelay = 800 * time.Millisecond

// ActionKind names the dispatch behaviour of a button or detail row.
type ActionKind string

const (
	ActionCall    ActionKind = "call"
	ActionEmail   ActionKind = "email"
	ActionWebsite ActionKind = "website"
	ActionMap     ActionKind = "map"
	ActionShare   ActionKind = "share"
	ActionSave    ActionKind = "save"
)

var safeSchemes = []string{"http://", "https://", "tel:", "mailto:", vcardDataURIPrefix}

// Input is the profile snapshot the renderer works on, social links included.
type Input struct {
	ProfileID       string
	Name            string
	JobTitle        string
	Bio             string
	Company         string
	Phone           string
	Email           string
	Website         string
	MapAddress      string
	ProfilePhotoURL string
	CoverPhotoURL   string
	SocialLinks     []SocialLink
}

// SocialLink is one external profile reference.
type SocialLink struct {
	Platform     string
	URL          string
	DisplayOrder int
}

// Links carries the externally supplied URLs of a card.
type Links struct {
	ShareURL    string
	DownloadURL string
}

// Contact returns the fields exported to the vCard.
func (in Input) Contact() Contact {
	return Contact{
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Company:  in.Company,
		JobTitle: in.JobTitle,
		Website:  in.Website,
	}
}

// Action is a clickable quick action or detail row.
type Action struct {
	Kind      ActionKind   `json:"kind"`
	Label     string       `json:"label"`
	Value     string       `json:"value,omitempty"`
	Href      template.URL `json:"href,omitempty"`
	CopyValue string       `json:"copy_value,omitempty"`
	Icon      view.Icon    `json:"icon"`
}

// Header describes the banner at the top of the card.
type Header struct {
	CoverPhotoURL string       `json:"cover_photo_url,omitempty"`
	Gradient      template.CSS `json:"gradient"`
}

// Photo describes the avatar slot.
type Photo struct {
	Visible bool   `json:"visible"`
	URL     string `json:"url,omitempty"`
	Initial string `json:"initial,omitempty"`
	Alt     string `json:"alt"`
}

// SocialItem is one cell of the social grid.
type SocialItem struct {
	Platform string       `json:"platform"`
	Href     template.URL `json:"href"`
	Icon     view.Icon    `json:"icon"`
}

// SocialGrid groups the social links with their shared shape.
type SocialGrid struct {
	Shape Shape        `json:"shape"`
	Items []SocialItem `json:"items"`
}

// Export is the save-to-contacts affordance.
type Export struct {
	VCard       string       `json:"vcard"`
	Filename    string       `json:"filename"`
	DataURI     template.URL `json:"data_uri"`
	DownloadURL string       `json:"download_url,omitempty"`
	Action      Action       `json:"action"`
}

// RenderedCard is the full visual model of one card.
type RenderedCard struct {
	ProfileID      string        `json:"profile_id"`
	Theme          theme.Theme   `json:"theme"`
	Style          template.CSS  `json:"style"`
	RowBackground  string        `json:"row_background"`
	Layout         Layout        `json:"layout"`
	Header         Header        `json:"header"`
	Photo          Photo         `json:"photo"`
	Name           string        `json:"name"`
	JobTitle       string        `json:"job_title,omitempty"`
	QuickActions   []Action      `json:"quick_actions"`
	Details        []Action      `json:"details"`
	Company        string        `json:"company,omitempty"`
	CompanyIcon    *view.Icon    `json:"company_icon,omitempty"`
	Bio            template.HTML `json:"bio,omitempty"`
	Social         SocialGrid    `json:"social"`
	Export         Export        `json:"export"`
	Share          SharePayload  `json:"share"`
	ShareTargets   []ShareTarget `json:"share_targets"`
	Loading        bool          `json:"loading"`
	LoadingDelayMS int64         `json:"loading_delay_ms"`
}

// Renderer turns a profile snapshot and a resolved theme into a card.
type Renderer struct {
	phoneRegion string
}

// NewRenderer constructs a Renderer; phoneRegion is the ISO region used to
// read numbers stored without a country code.
func NewRenderer(phoneRegion string) *Renderer {
	return &Renderer{phoneRegion: strings.ToUpper(strings.TrimSpace(phoneRegion))}
}

// Render builds the card. Missing optional fields simply drop their rows.
// A bio that fails to render as markdown falls back to escaped plain text.
func (r *Renderer) Render(in Input, th theme.Theme, links Links) RenderedCard {
	vcard := VCard(in.Contact())
	share := Share(in.Name, links.ShareURL)

	bio, err := RenderBio(in.Bio)
	if err != nil {
		bio = template.HTML("<p>" + template.HTMLEscapeString(in.Bio) + "</p>")
	}

	rows := rowBackground(th.BackgroundColor)
	dataURI := safeHref(VCardDataURI(vcard))

	return RenderedCard{
		ProfileID:     in.ProfileID,
		Theme:         th,
		Style:         template.CSS(th.Style() + "; --card-row-background: " + rows),
		RowBackground: rows,
		Layout:        LayoutFor(th.LayoutType),
		Header: Header{
			CoverPhotoURL: in.CoverPhotoURL,
			Gradient:      template.CSS(th.Gradient()),
		},
		Photo:        photoFor(in, th),
		Name:         in.Name,
		JobTitle:     in.JobTitle,
		QuickActions: r.quickActions(in),
		Details:      r.details(in),
		Company:      in.Company,
		CompanyIcon:  companyIcon(in.Company),
		Bio:          bio,
		Social: SocialGrid{
			Shape: IconShape(th.IconStyle),
			Items: socialItems(in.SocialLinks),
		},
		Export: Export{
			VCard:       vcard,
			Filename:    VCardFilename(in.Name),
			DataURI:     dataURI,
			DownloadURL: links.DownloadURL,
			Action:      Action{Kind: ActionSave, Label: "Save Contact", Href: dataURI, Icon: view.IconFor(view.IconSave)},
		},
		Share:          share,
		ShareTargets:   ShareTargets(share),
		Loading:        true,
		LoadingDelayMS: LoadingDelay.Milliseconds(),
	}
}

func (r *Renderer) quickActions(in Input) []Action {
	actions := make([]Action, 0, 4)
	if in.Phone != "" {
		actions = append(actions, Action{Kind: ActionCall, Label: "Call", Href: safeHref(PhoneURL(in.Phone)), Icon: view.IconFor(view.IconPhone)})
	}
	if in.Email != "" {
		actions = append(actions, Action{Kind: ActionEmail, Label: "Email", Href: safeHref(EmailURL(in.Email)), Icon: view.IconFor(view.IconEmail)})
	}
	if in.Website != "" {
		actions = append(actions, Action{Kind: ActionWebsite, Label: "Website", Href: safeHref(WebsiteURL(in.Website)), Icon: view.IconFor(view.IconWebsite)})
	}
	return append(actions, Action{Kind: ActionShare, Label: "Share", Icon: view.IconFor(view.IconShare)})
}

func (r *Renderer) details(in Input) []Action {
	rows := make([]Action, 0, 4)
	if in.Phone != "" {
		rows = append(rows, Action{
			Kind:      ActionCall,
			Label:     "Mobile",
			Value:     DisplayPhone(in.Phone, r.phoneRegion),
			Href:      safeHref(PhoneURL(in.Phone)),
			CopyValue: in.Phone,
			Icon:      view.IconFor(view.IconPhone),
		})
	}
	if in.Email != "" {
		rows = append(rows, Action{Kind: ActionEmail, Label: "Email", Value: in.Email, Href: safeHref(EmailURL(in.Email)), CopyValue: in.Email, Icon: view.IconFor(view.IconEmail)})
	}
	if in.Website != "" {
		rows = append(rows, Action{Kind: ActionWebsite, Label: "Website", Value: in.Website, Href: safeHref(WebsiteURL(in.Website)), CopyValue: in.Website, Icon: view.IconFor(view.IconWebsite)})
	}
	if in.MapAddress != "" {
		rows = append(rows, Action{Kind: ActionMap, Label: "Address", Value: in.MapAddress, Href: safeHref(MapURL(in.MapAddress)), CopyValue: in.MapAddress, Icon: view.IconFor(view.IconMap)})
	}
	return rows
}

// SortSocialLinks orders links by display order, keeping fetch order on ties.
func SortSocialLinks(links []SocialLink) []SocialLink {
	sorted := slices.Clone(links)
	slices.SortStableFunc(sorted, func(a, b SocialLink) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	return sorted
}

func socialItems(links []SocialLink) []SocialItem {
	sorted := SortSocialLinks(links)
	items := make([]SocialItem, 0, len(sorted))
	for _, link := range sorted {
		if strings.TrimSpace(link.URL) == "" {
			continue
		}
		items = append(items, SocialItem{
			Platform: link.Platform,
			Href:     safeHref(WebsiteURL(link.URL)),
			Icon:     view.SocialIcon(link.Platform),
		})
	}
	return items
}

func companyIcon(company string) *view.Icon {
	if strings.TrimSpace(company) == "" {
		return nil
	}
	icon := view.IconFor(view.IconCompany)
	return &icon
}

func photoFor(in Input, th theme.Theme) Photo {
	photo := Photo{Visible: th.ShowProfileImage, Alt: in.Name}
	if !photo.Visible {
		return photo
	}
	if in.ProfilePhotoURL != "" {
		photo.URL = in.ProfilePhotoURL
		return photo
	}
	photo.Initial = initial(in.Name)
	return photo
}

func initial(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(r))
}

func rowBackground(background string) string {
	if strings.EqualFold(background, "#ffffff") {
		return "#f8f9fc"
	}
	return "rgba(255,255,255,0.08)"
}

// safeHref marks dispatch targets with an allowed scheme as trusted URLs.
// Anything else is neutralized.
func safeHref(raw string) template.URL {
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	for _, scheme := range safeSchemes {
		if strings.HasPrefix(lower, strings.ToLower(scheme)) {
			return template.URL(raw)
		}
	}
	return template.URL("#")
}
