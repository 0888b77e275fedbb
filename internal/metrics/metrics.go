// Package metrics declares the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatSessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themepark_chat_sessions_created_total",
		Help: "The total number of chat sessions opened",
	})
	ChatMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themepark_chat_messages_total",
		Help: "Visitor chat messages by resolved knowledge base category",
	}, []string{"category"})
	PurchasesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themepark_purchases_completed_total",
		Help: "Completed ticket purchases by ticket type",
	}, []string{"ticket_type"})
	PurchaseRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themepark_purchase_revenue_ringgit_total",
		Help: "Sum of purchase totals in ringgit",
	})
	ContactMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "themepark_contact_messages_total",
		Help: "Contact form submissions by subject",
	}, []string{"subject"})
	PublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "themepark_event_publish_errors_total",
		Help: "The total number of purchase events that failed to publish",
	})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "themepark_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern and status",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"method", "route", "status"})
)

// FallbackCategory labels chat messages that matched no category.
const FallbackCategory = "fallback"
