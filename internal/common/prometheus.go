package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	PollerCampaignFailure      = "poller_campaign_failure"
	PriceProviderFallback      = "price_provider_fallback"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		PollerCampaignFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PollerCampaignFailure,
			Help: "Count of campaign poll iterations that failed",
		}, []string{"chain"}),
		PriceProviderFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PriceProviderFallback,
			Help: "Count of price lookups not served by the primary provider",
		}, []string{"strategy"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
