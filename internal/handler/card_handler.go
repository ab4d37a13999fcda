package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tapcard/internal/card"
	"github.com/tapcard/internal/db"
	"github.com/tapcard/internal/metrics"
	"github.com/tapcard/internal/service"
	"go.uber.org/zap"
)

const (
	visitorCookieName   = "tc_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60

	formatHTML  = "html"
	formatJSON  = "json"
	formatVCard = "vcard"

	healthCheckTimeout = 2 * time.Second
)

// ShowHome renders the landing page.
func (a *API) ShowHome(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title": "Digital Business Cards",
	})
}

// ShowCard renders the business card of one profile.
func (a *API) ShowCard(c *gin.Context) {
	var uri cardURI
	if err := c.ShouldBindUri(&uri); err != nil {
		a.NotFound(c)
		return
	}

	query := bindCardQuery(c)

	if query.Format == formatVCard {
		target := a.vcardPath(uri.ProfileID)
		if query.Source != "" {
			target += "?source=" + url.QueryEscape(query.Source)
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	bundle, ok := a.loadBundle(c, uri.ProfileID, query.Format)
	if !ok {
		return
	}

	input := bundle.CardInput()
	shareURL := a.cardURL(c, uri.ProfileID)
	rendered := a.renderer.Render(input, bundle.Theme(a.defaults), card.Links{
		ShareURL:    shareURL,
		DownloadURL: a.vcardPath(uri.ProfileID),
	})
	meta := card.MetadataFor(input, shareURL)

	var stats *cardStats
	if query.Format == formatJSON {
		stats = a.loadStats(c.Request.Context(), bundle.Profile.ID)
	}

	a.tracker.Track(db.EventView, service.CardEvent{
		ProfileID: bundle.Profile.ID,
		VisitorID: a.ensureVisitorID(c),
		Source:    query.Source,
		ClientIP:  c.ClientIP(),
	})

	if query.Format == formatJSON {
		metrics.ObserveCardRender("ok", formatJSON)
		c.JSON(http.StatusOK, gin.H{"card": rendered, "meta": meta, "stats": stats})
		return
	}

	metrics.ObserveCardRender("ok", formatHTML)
	a.renderHTML(c, http.StatusOK, "card.html", gin.H{
		"title":   meta.Title,
		"meta":    meta,
		"card":    rendered,
		"notices": a.takeFlashes(c),
	})
}

// cardStats is the analytics summary attached to the JSON card response.
// It reflects the counters before the current request.
type cardStats struct {
	Views          uint64           `json:"views"`
	UniqueVisitors uint64           `json:"unique_visitors"`
	Downloads      uint64           `json:"downloads"`
	Sources        map[string]int64 `json:"sources"`
}

// loadStats returns nil when the counters cannot be read; the card is
// served without them.
func (a *API) loadStats(ctx context.Context, profileID string) *cardStats {
	if a.stats == nil {
		return nil
	}
	stat, err := a.stats.Statistic(ctx, profileID)
	if err != nil {
		a.logger.Warn("card statistics unavailable", zap.String("profile_id", profileID), zap.Error(err))
		return nil
	}
	sources, err := a.stats.SourceCounts(ctx, profileID)
	if err != nil {
		a.logger.Warn("card source counts unavailable", zap.String("profile_id", profileID), zap.Error(err))
		return nil
	}
	return &cardStats{
		Views:          stat.Views,
		UniqueVisitors: stat.UniqueVisitors,
		Downloads:      stat.Downloads,
		Sources:        sources,
	}
}

// DownloadVCard serves the contact record as a .vcf attachment.
func (a *API) DownloadVCard(c *gin.Context) {
	var uri cardURI
	if err := c.ShouldBindUri(&uri); err != nil {
		metrics.ObserveVCardDownload("not_found")
		a.NotFound(c)
		return
	}

	query := bindCardQuery(c)

	bundle, ok := a.loadBundle(c, uri.ProfileID, formatVCard)
	if !ok {
		metrics.ObserveVCardDownload("not_found")
		return
	}

	input := bundle.CardInput()
	body := card.VCard(input.Contact())

	a.tracker.Track(db.EventVCardDownload, service.CardEvent{
		ProfileID: bundle.Profile.ID,
		VisitorID: a.ensureVisitorID(c),
		Source:    query.Source,
		ClientIP:  c.ClientIP(),
	})

	metrics.ObserveVCardDownload("ok")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", card.VCardFilename(input.Name)))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, card.VCardContentType, []byte(body))
}

// Healthz reports whether the service dependencies answer.
func (a *API) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for _, hc := range a.checks {
		if err := hc.check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[hc.name] = err.Error()
			continue
		}
		checks[hc.name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}

// NotFound renders the "Profile Not Found" view or its JSON equivalent.
func (a *API) NotFound(c *gin.Context) {
	if wantsJSON(c) {
		respondError(c, http.StatusNotFound, service.ErrProfileNotFound.Error())
		return
	}
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
		"title": "Profile Not Found",
	})
}

func (a *API) loadBundle(c *gin.Context, profileID, format string) (*service.Bundle, bool) {
	bundle, err := a.profiles.LoadBundle(c.Request.Context(), profileID)
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		metrics.ObserveCardRender("not_found", format)
		a.NotFound(c)
		return nil, false
	case err != nil:
		metrics.ObserveCardRender("error", format)
		c.Error(err)
		if wantsJSON(c) || format == formatJSON {
			respondError(c, http.StatusInternalServerError, "failed to load profile")
			return nil, false
		}
		a.renderHTML(c, http.StatusInternalServerError, "error.html", gin.H{
			"title": "Something went wrong",
		})
		return nil, false
	}
	return bundle, true
}

func (a *API) takeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	notices := make([]string, 0, len(flashes))
	for _, flash := range flashes {
		if text, ok := flash.(string); ok && text != "" {
			notices = append(notices, text)
		}
	}
	return notices
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" && len(id) <= 64 {
		return id
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}
