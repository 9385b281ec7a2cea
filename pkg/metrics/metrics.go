// Package metrics expone los contadores Prometheus de la aplicación.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConsumptionsRecorded consumos de convenio registrados en el libro.
	ConsumptionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "convenios",
		Name:      "consumptions_recorded_total",
		Help:      "Consumos de convenio registrados (PDV y lanzamiento diario).",
	})

	// InvoicesClosed cierres de período exitosos.
	InvoicesClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "convenios",
		Name:      "invoices_closed_total",
		Help:      "Facturas de convenio emitidas por cierre de período.",
	})

	// SalesCompleted ventas del PDV completadas.
	SalesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "convenios",
		Name:      "sales_completed_total",
		Help:      "Ventas del PDV completadas.",
	})
)
