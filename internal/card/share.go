package card

import "fmt"

// SharePayload is handed to the native share dialog.
type SharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ShareTarget is one entry of the fallback share sheet.
type ShareTarget struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Share builds the payload for a profile. The URL is the canonical public
// link supplied by the caller and is never derived here.
func Share(name, url string) SharePayload {
	return SharePayload{
		Title: fmt.Sprintf("%s's Contact Card", name),
		Text:  fmt.Sprintf("Check out %s's digital business card!", name),
		URL:   url,
	}
}

// ShareTargets lists the fallback options shown when native sharing is unavailable.
func ShareTargets(p SharePayload) []ShareTarget {
	return []ShareTarget{
		{Key: "copy", Label: "Copy Link", Href: p.URL},
		{Key: "whatsapp", Label: "WhatsApp", Href: "https://wa.me/?text=" + EncodeURIComponent(p.Text+" "+p.URL)},
		{Key: "facebook", Label: "Facebook", Href: "https://www.facebook.com/sharer/sharer.php?u=" + EncodeURIComponent(p.URL)},
		{Key: "twitter", Label: "Twitter", Href: "https://twitter.com/intent/tweet?text=" + EncodeURIComponent(p.Text) + "&url=" + EncodeURIComponent(p.URL)},
	}
}
