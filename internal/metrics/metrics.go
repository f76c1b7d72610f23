package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_orders_created_total",
			Help: "Number of gateway orders created",
		},
	)

	VerificationsSucceeded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_verifications_succeeded_total",
			Help: "Number of payment confirmations with a valid signature",
		},
	)

	VerificationsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_verifications_rejected_total",
			Help: "Number of payment confirmations rejected on signature mismatch",
		},
	)

	PurchasesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_recorded_total",
			Help: "Number of purchase rows written",
		},
	)

	PurchasesDuplicate = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_duplicate_total",
			Help: "Number of verified payments that matched an existing purchase",
		},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_rate_limited_total",
			Help: "Number of requests rejected by the rate limiter",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		OrdersCreated,
		VerificationsSucceeded,
		VerificationsRejected,
		PurchasesRecorded,
		PurchasesDuplicate,
		RateLimited,
	)
}
