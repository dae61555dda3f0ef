package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invoicesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reimbursement_invoices_processed_total",
		Help: "Invoices successfully stored and extracted.",
	})

	payoutsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reimbursement_payouts_created_total",
		Help: "Payout chains completed end to end.",
	})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reimbursement_request_errors_total",
		Help: "Failed requests by upstream service.",
	}, []string{"service"})
)
