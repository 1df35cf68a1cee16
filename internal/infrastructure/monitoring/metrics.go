package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersRegisteredTotal prometheus.Counter
	CreditsIssuedTotal       *prometheus.CounterVec
	PortfolioCredits         *prometheus.GaugeVec
	PortfolioValue           *prometheus.GaugeVec
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_system_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_system_customers_registered_total",
				Help: "Total number of customers successfully registered.",
			},
		),
		CreditsIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_system_credits_issued_total",
				Help: "Credit issuance attempts by outcome.",
			},
			[]string{"outcome"},
		),
		PortfolioCredits: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "credit_system_portfolio_credits",
				Help: "Number of credits per status at the last portfolio snapshot.",
			},
			[]string{"status"},
		),
		PortfolioValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "credit_system_portfolio_value",
				Help: "Sum of credit values per status at the last portfolio snapshot.",
			},
			[]string{"status"},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerRegistered() {
	Business.CustomersRegisteredTotal.Inc()
}

func RecordCreditIssued(outcome string) {
	Business.CreditsIssuedTotal.WithLabelValues(outcome).Inc()
}

func RecordPortfolio(status string, credits int64, value float64) {
	Business.PortfolioCredits.WithLabelValues(status).Set(float64(credits))
	Business.PortfolioValue.WithLabelValues(status).Set(value)
}
