package dto

import "time"

// PaymentRequestResponse salida de una solicitud de pago.
type PaymentRequestResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Amount      string     `json:"amount"` // decimal serializado como string
	Status      string     `json:"status"` // PENDING | APPROVED
	Notes       string     `json:"notes,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// PaymentRequestListResponse listado de solicitudes de pago.
type PaymentRequestListResponse struct {
	Items []PaymentRequestResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// GrantAccessRequest concesión manual de acceso (operador): días y justificación.
// Ambos se validan en el servidor; el prompt del cliente no es suficiente.
type GrantAccessRequest struct {
	Days   int    `json:"days" validate:"required,min=1"`
	Reason string `json:"reason" validate:"required,min=3"`
}
