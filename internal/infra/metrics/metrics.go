package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AdjustmentsTotal counts inventory adjustments by action and outcome.
// Outcome is "success", a business-rule failure code, or "error".
var AdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chemtrack_inventory_adjustments_total",
	Help: "Inventory quantity adjustments processed, by action and outcome.",
}, []string{"action", "outcome"})
