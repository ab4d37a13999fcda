package card

import (
	"regexp"
	"strings"
)

const (
	// VCardContentType is served by the download endpoint.
	VCardContentType = "text/vcard; charset=utf-8"

	vcardDataURIPrefix = "data:text/vcard;charset=UTF-8,"
	defaultVCardName   = "contact"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Contact holds the fields exported to a vCard.
type Contact struct {
	Name     string
	Phone    string
	Email    string
	Company  string
	JobTitle string
	Website  string
}

// VCardField is one labeled line of the exported record.
type VCardField struct {
	Label string
	Value string
}

// Fields returns the six exported fields in their fixed order.
func (c Contact) Fields() []VCardField {
	return []VCardField{
		{Label: "FN", Value: c.Name},
		{Label: "TEL", Value: c.Phone},
		{Label: "EMAIL", Value: c.Email},
		{Label: "ORG", Value: c.Company},
		{Label: "TITLE", Value: c.JobTitle},
		{Label: "URL", Value: c.Website},
	}
}

// VCard builds the contact record text. Every field is emitted, empty or not,
// with its value percent-encoded.
func VCard(c Contact) string {
	lines := make([]string, 0, 9)
	lines = append(lines, "BEGIN:VCARD", "VERSION:3.0")
	for _, field := range c.Fields() {
		lines = append(lines, field.Label+":"+EncodeURIComponent(field.Value))
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}

// VCardDataURI wraps the vCard text into a data URI usable as a download link.
func VCardDataURI(text string) string {
	return vcardDataURIPrefix + strings.ReplaceAll(text, "\n", "%0A")
}

// VCardFilename collapses whitespace runs in the name to underscores and adds .vcf.
func VCardFilename(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultVCardName + ".vcf"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + ".vcf"
}
