package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the campaign plan handler, end to end
	PlanLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaign_plan_latency_seconds",
		Help:    "Latency of campaign plan generation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of campaign plans generated
	PlanRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campaign_plan_requests_total",
		Help: "Total number of campaign plan requests",
	})

	BundleProductFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundle_product_failures_total",
		Help: "Bundle product creations recorded as failures",
	})

	DiscountFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundle_discount_failures_total",
		Help: "Bundle discount creations recorded as failures",
	})

	CheckoutFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_session_failures_total",
		Help: "Checkout sessions recorded as failures",
	})

	ImageFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bundle_image_fallbacks_total",
		Help: "Bundle hero images that fell back to a child image or placeholder",
	})

	CampaignsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campaigns_published_total",
		Help: "Campaigns created, labelled by status",
	}, []string{"status"})
)

func Init() {
	prometheus.MustRegister(
		PlanLatency,
		PlanRequests,
		BundleProductFailures,
		DiscountFailures,
		CheckoutFailures,
		ImageFallbacks,
		CampaignsPublished,
	)
}
