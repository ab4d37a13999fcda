package card

import (
	"strings"
)

const googleMapsSearchURL = "https://maps.google.com/?q="

// mapHosts are the substrings that mark an address as an already-formed maps link.
var mapHosts = []string{"maps.google.com", "maps.app.goo.gl", "goo.gl/maps"}

// PhoneURL returns the tel: dispatch target for a raw phone value.
func PhoneURL(phone string) string {
	if phone == "" {
		return ""
	}
	return "tel:" + phone
}

// EmailURL returns the mailto: dispatch target for a raw email value.
func EmailURL(email string) string {
	if email == "" {
		return ""
	}
	return "mailto:" + email
}

// WebsiteURL keeps http(s) links untouched and prefixes everything else with https://.
func WebsiteURL(website string) string {
	if website == "" {
		return ""
	}
	if strings.HasPrefix(website, "http://") || strings.HasPrefix(website, "https://") {
		return website
	}
	return "https://" + website
}

// MapURL passes through recognized maps links and wraps any other address
// into a Google Maps search URL.
func MapURL(address string) string {
	if address == "" {
		return ""
	}
	for _, host := range mapHosts {
		if strings.Contains(address, host) {
			return address
		}
	}
	return googleMapsSearchURL + EncodeURIComponent(address)
}

// EncodeURIComponent percent-encodes every byte outside the unreserved set
// A-Z a-z 0-9 - _ . ! ~ * ' ( ), matching the browser function of the same name.
func EncodeURIComponent(value string) string {
	const upperhex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isUnreservedComponentByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreservedComponentByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
