package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrderSettlementTotal counts settlement outcomes per payment method.
	OrderSettlementTotal *prometheus.CounterVec
	// OrderSettlementDuration records settlement latency in milliseconds.
	OrderSettlementDuration *prometheus.HistogramVec
	// GiftcardDebitTotal counts gift card debit attempts by outcome.
	GiftcardDebitTotal *prometheus.CounterVec
	// CardSettlementRollbackTotal counts card settlements rolled back after the
	// intent was authorized upstream. Each one needs manual reconciliation.
	CardSettlementRollbackTotal prometheus.Counter
	// ReceiptJobsTotal counts receipt task outcomes in the worker.
	ReceiptJobsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrderSettlementTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_settlement_total",
			Help:      "Count of order settlement outcomes.",
		}, []string{"method", "result"})
		OrderSettlementDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_settlement_duration_ms",
			Help:      "Latency of order settlement transactions in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method"})
		GiftcardDebitTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "giftcard_debit_total",
			Help:      "Count of gift card debit attempts by outcome.",
		}, []string{"result"})
		CardSettlementRollbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "card_settlement_rollback_total",
			Help:      "Card settlements rolled back after the payment intent was authorized.",
		})
		ReceiptJobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_jobs_total",
			Help:      "Count of receipt delivery jobs by outcome.",
		}, []string{"result"})

		mustRegisterCollector(reg, OrderSettlementTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderSettlementTotal = v
			}
		})
		mustRegisterCollector(reg, OrderSettlementDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				OrderSettlementDuration = v
			}
		})
		mustRegisterCollector(reg, GiftcardDebitTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				GiftcardDebitTotal = v
			}
		})
		mustRegisterCollector(reg, CardSettlementRollbackTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CardSettlementRollbackTotal = v
			}
		})
		mustRegisterCollector(reg, ReceiptJobsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReceiptJobsTotal = v
			}
		})
	})
}

// RecordSettlement is a nil-safe helper used by the order service.
func RecordSettlement(method, result string, durationMs float64) {
	if OrderSettlementTotal != nil {
		OrderSettlementTotal.WithLabelValues(method, result).Inc()
	}
	if OrderSettlementDuration != nil && durationMs >= 0 {
		OrderSettlementDuration.WithLabelValues(method).Observe(durationMs)
	}
}

func RecordGiftcardDebit(result string) {
	if GiftcardDebitTotal != nil {
		GiftcardDebitTotal.WithLabelValues(result).Inc()
	}
}

func RecordCardRollback() {
	if CardSettlementRollbackTotal != nil {
		CardSettlementRollbackTotal.Inc()
	}
}

func RecordReceiptJob(result string) {
	if ReceiptJobsTotal != nil {
		ReceiptJobsTotal.WithLabelValues(result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
