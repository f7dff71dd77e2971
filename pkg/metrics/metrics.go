package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ClientRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gharsaathi", Name: "client_requests_total", Help: "Outbound API requests by method and status class."},
		[]string{"method", "status"},
	)
	ClientRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "gharsaathi", Name: "client_retries_total", Help: "Requests re-issued after a token refresh."},
	)
	TokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gharsaathi", Name: "token_refresh_total", Help: "Token refresh attempts by outcome."},
		[]string{"outcome"},
	)
	SearchFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "gharsaathi", Name: "search_fallback_total", Help: "Searches served by the client-side filtering fallback."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gharsaathi", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "gharsaathi", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ClientRequests)
	reg.MustRegister(ClientRetries)
	reg.MustRegister(TokenRefreshes)
	reg.MustRegister(SearchFallbacks)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
