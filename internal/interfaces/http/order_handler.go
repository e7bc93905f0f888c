package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// OrderHandler pedidos, comprobante PDF y exportación XML.
type OrderHandler struct {
	uc  *usecase.OrderUseCase
	log *logger.Logger
}

func NewOrderHandler(uc *usecase.OrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        companyId  query  string  false  "Filtrar por empresa"
// @Param        clientId   query  string  false  "Filtrar por cliente"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.OrderListResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	q := dto.OrderListQuery{
		CompanyID:   c.Query("companyId"),
		ClientID:    c.Query("clientId"),
		PageRequest: pageFrom(c),
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con cliente, empresa y productos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear pedido
// @Description  number y date los asigna el servidor. El cliente debe pertenecer a la empresa.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderRequest  true  "clientId, companyId, notes"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
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
// @Summary      Actualizar pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/v1/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
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
// @Summary      Eliminar pedido y sus productos
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Comprobante del pedido en PDF
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Router       /api/v1/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	out, filename, err := h.uc.PDF(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(out)
}

// XML godoc
// @Summary      Exportación XML del pedido
// @Tags         orders
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {string}  string
// @Router       /api/v1/orders/{id}/xml [get]
func (h *OrderHandler) XML(c *fiber.Ctx) error {
	out, filename, err := h.uc.XML(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(out)
}
