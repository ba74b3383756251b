package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/services"
)

// CategoryController handles HTTP requests related to categories.
type CategoryController struct {
	categoryService services.ICategoryService
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(svc services.ICategoryService) *CategoryController {
	return &CategoryController{categoryService: svc}
}

func (c *CategoryController) FindAll(ctx *fiber.Ctx) error {
	categories, err := c.categoryService.FindAll(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(categories)
}

// FindParents handles GET /categories/parents.
func (c *CategoryController) FindParents(ctx *fiber.Ctx) error {
	categories, err := c.categoryService.FindParents(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(categories)
}

func (c *CategoryController) FindByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	category, err := c.categoryService.FindByID(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(category)
}

func (c *CategoryController) FindSubcategories(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	categories, err := c.categoryService.FindSubcategories(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(categories)
}

func (c *CategoryController) FindProducts(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	products, err := c.categoryService.FindProducts(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(products)
}

func (c *CategoryController) Create(ctx *fiber.Ctx) error {
	var category models.Category
	if err := ctx.BodyParser(&category); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	created, err := c.categoryService.Create(ctx.UserContext(), &category)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *CategoryController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var category models.Category
	if err := ctx.BodyParser(&category); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.categoryService.Update(ctx.UserContext(), id, &category)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

// Delete handles DELETE /categories/:id. Products and subcategories move to the parent.
func (c *CategoryController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.categoryService.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *CategoryController) LinkProduct(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	productID, err := paramID(ctx, "productId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.categoryService.LinkProduct(ctx.UserContext(), id, productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *CategoryController) UnlinkProduct(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	productID, err := paramID(ctx, "productId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.categoryService.UnlinkProduct(ctx.UserContext(), id, productID); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
