package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una PaymentRequest. REJECTED existe en el enum de la tabla pero
// ningún flujo lo usa; la fila se muta una sola vez, de PENDING a APPROVED.
const (
	PaymentPending  = "PENDING"
	PaymentApproved = "APPROVED"
)

// PaymentRequest registra un pago auto-reportado por el tenant ("ya pagué")
// o una concesión manual del operador. Funciona como log de auditoría
// append-only, no como cola con reintentos.
//
// En concesiones manuales Amount es 0, Status nace APPROVED y Notes embebe
// la cantidad de días y la justificación del operador.
type PaymentRequest struct {
	ID          string
	TenantID    string
	Amount      decimal.Decimal
	Status      string // PENDING | APPROVED
	Notes       string
	RequestedAt time.Time
	ProcessedAt *time.Time // nil mientras está PENDING
}
