package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	cardRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "card",
			Name:      "renders_total",
			Help:      "Card page renders by outcome and format.",
		},
		[]string{"outcome", "format"},
	)

	vcardDownloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "card",
			Name:      "vcard_downloads_total",
			Help:      "vCard download attempts by outcome.",
		},
		[]string{"outcome"},
	)

	analyticsFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "failures_total",
			Help:      "Analytics writes that failed and were discarded.",
		},
		[]string{"event"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Card bundle cache lookups by result.",
		},
		[]string{"result"},
	)
)

// ObserveCardRender counts one card render.
func ObserveCardRender(outcome, format string) {
	register()
	cardRenders.WithLabelValues(outcome, format).Inc()
}

// ObserveVCardDownload counts one vCard download attempt.
func ObserveVCardDownload(outcome string) {
	register()
	vcardDownloads.WithLabelValues(outcome).Inc()
}

// ObserveAnalyticsFailure counts one discarded analytics write.
func ObserveAnalyticsFailure(event string) {
	register()
	analyticsFailures.WithLabelValues(event).Inc()
}

// ObserveCacheLookup counts one bundle cache lookup ("hit", "miss" or "error").
func ObserveCacheLookup(result string) {
	register()
	cacheLookups.WithLabelValues(result).Inc()
}
