package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agropet/agropet-api/internal/application/billing"
	"github.com/agropet/agropet-api/internal/application/dto"
	appsub "github.com/agropet/agropet-api/internal/application/subscription"
	"github.com/agropet/agropet-api/internal/domain"
)

// SubscriptionHandler estado de suscripción y solicitudes de pago del tenant autenticado.
type SubscriptionHandler struct {
	status   *appsub.StatusService
	payments *billing.PaymentRequestUseCase
}

// NewSubscriptionHandler construye el handler de suscripción.
func NewSubscriptionHandler(status *appsub.StatusService, payments *billing.PaymentRequestUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{status: status, payments: payments}
}

// GetStatus godoc
// @Summary      Resumen de suscripción del tenant autenticado
// @Tags         subscription
// @Produce      json
// @Success      200  {object}  dto.SubscriptionStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscription [get]
func (h *SubscriptionHandler) GetStatus(c *fiber.Ctx) error {
	out, err := h.status.GetSubscriptionStatus(c.Context(), GetTenantID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		// Sin datos que mostrar: tenant del token ya no existe.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
	}
	return c.JSON(out)
}

// reportPaymentBody cuerpo opcional del auto-reporte de pago.
type reportPaymentBody struct {
	Notes string `json:"notes"`
}

// ReportPayment godoc
// @Summary      Auto-reportar un pago ("ya pagué") para confirmación del operador
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.PaymentRequestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subscription/payment-requests [post]
func (h *SubscriptionHandler) ReportPayment(c *fiber.Ctx) error {
	var in reportPaymentBody
	_ = c.BodyParser(&in) // notes es opcional; cuerpo vacío es válido

	out, err := h.payments.RequestConfirmation(c.Context(), GetTenantID(c), in.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTenantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		case errors.Is(err, domain.ErrTenantWithoutPlan):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_PLAN", Message: "el tenant no tiene plan asignado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments godoc
// @Summary      Historial de solicitudes de pago del tenant autenticado
// @Tags         subscription
// @Produce      json
// @Param        limit   query  int  false  "máx 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.PaymentRequestListResponse
// @Router       /api/subscription/payment-requests [get]
func (h *SubscriptionHandler) ListPayments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	out, err := h.payments.ListByTenant(c.Context(), GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
