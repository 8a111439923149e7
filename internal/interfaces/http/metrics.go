package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del gate de módulos y del flujo de aprobación, expuestos en /metrics.
var (
	gateAllowed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agropet",
		Subsystem: "module_gate",
		Name:      "allowed_total",
		Help:      "Peticiones permitidas por el gate de módulos.",
	}, []string{"module"})

	gateDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agropet",
		Subsystem: "module_gate",
		Name:      "denied_total",
		Help:      "Peticiones rechazadas por módulo no contratado o vencido.",
	}, []string{"module"})

	paymentsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agropet",
		Subsystem: "billing",
		Name:      "payments_approved_total",
		Help:      "Solicitudes de pago aprobadas por un operador.",
	})

	manualGrants = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agropet",
		Subsystem: "billing",
		Name:      "manual_grants_total",
		Help:      "Concesiones manuales de acceso otorgadas.",
	})
)
