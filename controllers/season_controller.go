package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/services"
)

// SeasonController handles HTTP requests related to seasonal promotions.
type SeasonController struct {
	seasonService services.ISeasonService
}

// NewSeasonController creates a new SeasonController instance.
func NewSeasonController(svc services.ISeasonService) *SeasonController {
	return &SeasonController{seasonService: svc}
}

// FindActive handles GET /seasons.
func (c *SeasonController) FindActive(ctx *fiber.Ctx) error {
	seasons, err := c.seasonService.FindActive(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(seasons)
}

func (c *SeasonController) FindAll(ctx *fiber.Ctx) error {
	seasons, err := c.seasonService.FindAll(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(seasons)
}

func (c *SeasonController) FindByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	season, err := c.seasonService.FindByID(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(season)
}

func (c *SeasonController) Create(ctx *fiber.Ctx) error {
	var season models.Season
	if err := ctx.BodyParser(&season); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	created, err := c.seasonService.Create(ctx.UserContext(), &season)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *SeasonController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var season models.Season
	if err := ctx.BodyParser(&season); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.seasonService.Update(ctx.UserContext(), id, &season)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

// UpdateStatus handles PUT /seasons/:id/status with {"status": "1"}.
func (c *SeasonController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var request struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	season, err := c.seasonService.UpdateStatus(ctx.UserContext(), id, request.Status)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(season)
}

func (c *SeasonController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.seasonService.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *SeasonController) FindProducts(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "seasonId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	products, err := c.seasonService.FindProducts(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(products)
}

func (c *SeasonController) AddProduct(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "seasonId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	productID, err := paramID(ctx, "productId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.seasonService.AddProduct(ctx.UserContext(), id, productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *SeasonController) RemoveProduct(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "seasonId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	productID, err := paramID(ctx, "productId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.seasonService.RemoveProduct(ctx.UserContext(), id, productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
