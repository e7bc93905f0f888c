package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// OrderLineHandler líneas de pedido (/order-products).
type OrderLineHandler struct {
	uc  *usecase.OrderLineUseCase
	log *logger.Logger
}

func NewOrderLineHandler(uc *usecase.OrderLineUseCase, log *logger.Logger) *OrderLineHandler {
	return &OrderLineHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar productos de pedidos
// @Tags         order-products
// @Produce      json
// @Security     BearerAuth
// @Param        orderId    query  string  false  "Filtrar por pedido"
// @Param        companyId  query  string  false  "Filtrar por empresa"
// @Success      200        {object}  dto.OrderLineListResponse
// @Router       /api/v1/order-products [get]
func (h *OrderLineHandler) List(c *fiber.Ctx) error {
	q := dto.OrderLineListQuery{
		OrderID:     c.Query("orderId"),
		CompanyID:   c.Query("companyId"),
		PageRequest: pageFrom(c),
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto de pedido
// @Tags         order-products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.OrderLineResponse
// @Router       /api/v1/order-products/{id} [get]
func (h *OrderLineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Añadir producto a un pedido
// @Tags         order-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderLineRequest  true  "orderId, productId, quantity"
// @Success      201   {object}  dto.OrderLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/order-products [post]
func (h *OrderLineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto de pedido
// @Tags         order-products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                      true  "ID de la línea"
// @Param        body  body  dto.UpdateOrderLineRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.OrderLineResponse
// @Router       /api/v1/order-products/{id} [put]
func (h *OrderLineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderLineRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Quitar producto de un pedido
// @Tags         order-products
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Router       /api/v1/order-products/{id} [delete]
func (h *OrderLineHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
