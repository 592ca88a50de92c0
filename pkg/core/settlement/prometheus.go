package settlement

import (
	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics for monitoring service.
var (
	// processedTxns prometheus metric.
	processedTxns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Number of processed transactions by status",
			Name:      "processed_transactions_total",
			Namespace: "settler",
		},
		[]string{"status"},
	)
	// chargedFees prometheus metric.
	chargedFees = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Help:      "Fees charged to payers in tinybars by kind",
			Name:      "charged_fees_tinybars_total",
			Namespace: "settler",
		},
		[]string{"kind"},
	)
	// assessedCustomFees prometheus metric.
	assessedCustomFees = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of custom fees assessed by applied transfers",
			Name:      "assessed_custom_fees_total",
			Namespace: "settler",
		},
	)
	// persistedKeys prometheus metric.
	persistedKeys = prometheus.NewCounter(
		prometheus.CounterOpts{
			Help:      "Number of keys persisted to the DB",
			Name:      "persisted_keys_total",
			Namespace: "settler",
		},
	)
)

func init() {
	prometheus.MustRegister(
		processedTxns,
		chargedFees,
		assessedCustomFees,
		persistedKeys,
	)
}

func updateReceiptMetrics(r *Receipt) {
	processedTxns.WithLabelValues(r.Status.String()).Inc()
	updateChargedFeesMetric(r.Charged)
	if r.Status == status.Success {
		assessedCustomFees.Add(float64(len(r.AssessedFees)))
	}
}

func updateChargedFeesMetric(charged fee.Object) {
	chargedFees.WithLabelValues("node").Add(float64(charged.NodeFee))
	chargedFees.WithLabelValues("network").Add(float64(charged.NetworkFee))
	chargedFees.WithLabelValues("service").Add(float64(charged.ServiceFee))
}

func updatePersistedKeysMetric(n int) {
	persistedKeys.Add(float64(n))
}
