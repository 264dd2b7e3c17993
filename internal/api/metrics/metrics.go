// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings. Collectors register themselves with the
// default registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agrimarket"

// OrdersCreatedTotal counts order rows inserted through checkout.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of order rows created from checkout batches.",
	},
)

// OrdersApprovedTotal counts successful pending→confirmed transitions.
var OrdersApprovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_approved_total",
		Help:      "Total number of orders approved by an admin.",
	},
)

// MessagesSentTotal counts messages accepted by the inbox, including the
// approval notifications synthesized by the workflow.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages inserted into the inbox.",
	},
)

// RecommendationsServedTotal counts agroplan analyses by source.
// Label:
//   - source: "gateway" (live completion), "fallback" (demo plan), or
//     "cache" (served from Redis)
var RecommendationsServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_served_total",
		Help:      "Total number of crop-planning analyses served, by source.",
	},
	[]string{"source"},
)
