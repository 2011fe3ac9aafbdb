package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contractor_reports_generated_total",
		Help: "Offer documents rendered, by format.",
	}, []string{"format"})

	offersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contractor_offers_sent_total",
		Help: "Offer emails by outcome: sent, not_configured or failed.",
	}, []string{"result"})

	orphanedEntriesSeen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contractor_orphaned_entries_seen_total",
		Help: "Time entries skipped during aggregation because their worker type no longer exists.",
	})
)
