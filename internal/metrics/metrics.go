package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RewardsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_rewards_granted_total",
			Help: "Activity rewards written to the ledger",
		},
		[]string{"type"},
	)
	QuotaBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "economy_quota_blocked_total",
			Help: "Activity events dropped by the daily quota",
		},
		[]string{"type"},
	)
	Exchanges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "economy_exchanges_total",
			Help: "Completed dollar-to-token exchanges",
		},
	)
	SalaryClaims = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "economy_salary_claims_total",
			Help: "Successful weekly salary claims",
		},
	)
	MachineSales = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "economy_machine_sales_total",
			Help: "Completed machine sales",
		},
	)
)

func init() {
	prometheus.MustRegister(RewardsGranted)
	prometheus.MustRegister(QuotaBlocked)
	prometheus.MustRegister(Exchanges)
	prometheus.MustRegister(SalaryClaims)
	prometheus.MustRegister(MachineSales)
}
