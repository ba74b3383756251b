package controllers

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/services"
)

// OrderController handles HTTP requests related to orders.
type OrderController struct {
	orderService services.IOrderService
}

// NewOrderController creates a new OrderController instance.
func NewOrderController(svc services.IOrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// Checkout handles POST /orders/checkout.
func (c *OrderController) Checkout(ctx *fiber.Ctx) error {
	var request models.OrderRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}

	order, err := c.orderService.Checkout(ctx.UserContext(), request)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(order)
}

// parseStatus accepts {"status": "..."}, a JSON string or a raw text label.
func parseStatus(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	switch {
	case len(body) > 0 && body[0] == '{':
		var payload struct {
			Status string `json:"status"`
		}
		err := json.Unmarshal(body, &payload)
		return payload.Status, err
	case len(body) > 0 && body[0] == '"':
		var status string
		err := json.Unmarshal(body, &status)
		return status, err
	default:
		return string(body), nil
	}
}

// UpdateStatus handles PUT /orders/order-status/:orderId.
func (c *OrderController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	status, err := parseStatus(ctx.Body())
	if err != nil {
		return badRequest(ctx, "Invalid request body format")
	}

	order, err := c.orderService.UpdateStatus(ctx.UserContext(), id, status)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(order)
}

// Delete handles DELETE /orders/:id.
func (c *OrderController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.orderService.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *OrderController) FindAll(ctx *fiber.Ctx) error {
	orders, err := c.orderService.FindAll(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(orders)
}

func (c *OrderController) FindByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	order, err := c.orderService.FindByID(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(order)
}

func (c *OrderController) FindByCustomer(ctx *fiber.Ctx) error {
	customerID, err := paramID(ctx, "customerId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	orders, err := c.orderService.FindByCustomer(ctx.UserContext(), customerID)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(orders)
}

func (c *OrderController) Create(ctx *fiber.Ctx) error {
	var order models.Order
	if err := ctx.BodyParser(&order); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	created, err := c.orderService.Create(ctx.UserContext(), &order)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *OrderController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var order models.Order
	if err := ctx.BodyParser(&order); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.orderService.Update(ctx.UserContext(), id, &order)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

// RecalculateTotal handles POST /orders/:orderId/recalculate-total.
func (c *OrderController) RecalculateTotal(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	order, err := c.orderService.RecalculateTotal(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(order)
}

func (c *OrderController) FindDetails(ctx *fiber.Ctx) error {
	orderID, err := paramID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	details, err := c.orderService.FindDetails(ctx.UserContext(), orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(details)
}

func (c *OrderController) AddDetail(ctx *fiber.Ctx) error {
	orderID, err := paramID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var detail models.OrderDetail
	if err := ctx.BodyParser(&detail); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	created, err := c.orderService.AddDetail(ctx.UserContext(), orderID, detail)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *OrderController) UpdateDetail(ctx *fiber.Ctx) error {
	orderID, err := paramID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	productID, err := paramID(ctx, "productId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var detail models.OrderDetail
	if err := ctx.BodyParser(&detail); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.orderService.UpdateDetail(ctx.UserContext(), orderID, productID, detail.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

func (c *OrderController) DeleteDetail(ctx *fiber.Ctx) error {
	orderID, err := paramID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	productID, err := paramID(ctx, "productId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.orderService.DeleteDetail(ctx.UserContext(), orderID, productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
