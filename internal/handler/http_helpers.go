package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// wantsJSON reports whether the client prefers JSON over HTML.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func (a *API) cardPath(profileID string) string {
	return "/v/" + url.PathEscape(profileID)
}

func (a *API) vcardPath(profileID string) string {
	return "/api/vcard/" + url.PathEscape(profileID)
}

// cardURL is the canonical public link of a card. Without a configured base
// URL it is derived from the request host.
func (a *API) cardURL(c *gin.Context, profileID string) string {
	base := a.baseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + a.cardPath(profileID)
}

func redirectSeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
