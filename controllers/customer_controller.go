package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/services"
)

// CustomerController handles HTTP requests related to customers.
type CustomerController struct {
	customerService services.ICustomerService
}

// NewCustomerController creates a new CustomerController instance.
func NewCustomerController(svc services.ICustomerService) *CustomerController {
	return &CustomerController{customerService: svc}
}

func (c *CustomerController) FindAll(ctx *fiber.Ctx) error {
	customers, err := c.customerService.FindAll(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(customers)
}

func (c *CustomerController) FindByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	customer, err := c.customerService.FindByID(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(customer)
}

func (c *CustomerController) Create(ctx *fiber.Ctx) error {
	var customer models.Customer
	if err := ctx.BodyParser(&customer); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	created, err := c.customerService.Create(ctx.UserContext(), &customer)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *CustomerController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var customer models.Customer
	if err := ctx.BodyParser(&customer); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.customerService.Update(ctx.UserContext(), id, &customer)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

func (c *CustomerController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.customerService.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Login handles POST /customers/login. Any failure yields 401.
func (c *CustomerController) Login(ctx *fiber.Ctx) error {
	var request models.LoginRequest
	if err := ctx.BodyParser(&request); err != nil {
		return respondError(ctx, models.ErrInvalidCredentials)
	}
	customer, err := c.customerService.Login(ctx.UserContext(), request)
	if err != nil {
		return respondError(ctx, models.ErrInvalidCredentials)
	}
	return ctx.JSON(customer)
}
