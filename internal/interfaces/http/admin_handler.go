package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agropet/agropet-api/internal/application/billing"
	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/internal/domain"
)

// AdminHandler operaciones de operador: bandeja de solicitudes, aprobación y
// concesiones manuales. La autorización (lista de operadores) vive en el use
// case, no aquí: el handler solo transporta el email del token.
type AdminHandler struct {
	approval *billing.ApprovalUseCase
	payments *billing.PaymentRequestUseCase
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(approval *billing.ApprovalUseCase, payments *billing.PaymentRequestUseCase) *AdminHandler {
	return &AdminHandler{approval: approval, payments: payments}
}

// ListPending godoc
// @Summary      Bandeja de solicitudes de pago pendientes (operador)
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "máx 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.PaymentRequestListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/payment-requests [get]
func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	out, err := h.payments.ListPending(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ApprovePayment godoc
// @Summary      Aprobar una solicitud de pago pendiente (operador)
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  dto.PaymentRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/payment-requests/{id}/approve [post]
func (h *AdminHandler) ApprovePayment(c *fiber.Ctx) error {
	out, err := h.approval.ApprovePayment(c.Context(), GetEmail(c), c.Params("id"))
	if err != nil {
		if resp := approvalError(c, err); resp != nil {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	paymentsApproved.Inc()
	return c.JSON(out)
}

// GrantAccess godoc
// @Summary      Conceder acceso manual a un tenant (operador)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id del tenant"
// @Param        body  body  dto.GrantAccessRequest  true  "days, reason"
// @Success      201  {object}  dto.PaymentRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/grant [post]
func (h *AdminHandler) GrantAccess(c *fiber.Ctx) error {
	var in dto.GrantAccessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.approval.GrantManualAccess(c.Context(), GetEmail(c), c.Params("id"), in.Days, in.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days debe ser >= 1 y reason no puede estar vacío"})
		}
		if resp := approvalError(c, err); resp != nil {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	manualGrants.Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// approvalError traduce los errores comunes del flujo de aprobación; nil si no aplica.
func approvalError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotOperator):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_OPERATOR", Message: "operación reservada a operadores de facturación"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrTenantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrRequestNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PROCESSED", Message: "la solicitud ya fue procesada"})
	}
	return nil
}
