package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_emails_total",
			Help: "Lead welcome emails processed by the worker, by outcome",
		},
		[]string{"status"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Failures talking to external systems",
		},
		[]string{"service"},
	)
)

func RecordEmailSent()   { leadEmailsTotal.WithLabelValues("sent").Inc() }
func RecordEmailFailed() { leadEmailsTotal.WithLabelValues("failed").Inc() }

func RecordPublishError() { integrationErrors.WithLabelValues("rabbitmq").Inc() }
func RecordSMTPError()    { integrationErrors.WithLabelValues("smtp").Inc() }
