package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "sessions_created_total", Help: "Number of QR authentication sessions created."},
	)
	ScansCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "scans_completed_total", Help: "Number of successful scan authentications."},
	)
	TokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "tokens_issued_total", Help: "Number of bearer tokens issued."},
	)
	TokensRevoked = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "tokens_revoked_total", Help: "Number of bearer tokens revoked."},
	)
	StoreRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "qrgate", Name: "store_records", Help: "Number of live records per in-memory store."},
		[]string{"store"},
	)
	UpstreamAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "upstream_attempts_total", Help: "Number of upstream forwarding attempts, including retries."},
	)
	UpstreamFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "qrgate", Name: "upstream_failures_total", Help: "Number of upstream transport failures by class."},
		[]string{"class"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(SessionsCreated)
	reg.MustRegister(ScansCompleted)
	reg.MustRegister(TokensIssued)
	reg.MustRegister(TokensRevoked)
	reg.MustRegister(StoreRecords)
	reg.MustRegister(UpstreamAttempts)
	reg.MustRegister(UpstreamFailures)
}
