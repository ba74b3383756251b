package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/services"
)

// ProductController handles HTTP requests related to the product catalog.
type ProductController struct {
	productService services.IProductService
}

// NewProductController creates a new ProductController instance.
func NewProductController(svc services.IProductService) *ProductController {
	return &ProductController{productService: svc}
}

func (c *ProductController) FindTop(ctx *fiber.Ctx) error {
	products, err := c.productService.FindTop(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(products)
}

func (c *ProductController) FindByID(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	product, err := c.productService.FindByID(ctx.UserContext(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(product)
}

// Search handles GET /products/search/:keyword.
func (c *ProductController) Search(ctx *fiber.Ctx) error {
	products, err := c.productService.Search(ctx.UserContext(), ctx.Params("keyword"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(products)
}

func queryDecimal(ctx *fiber.Ctx, key string) (decimal.Decimal, error) {
	return decimal.NewFromString(ctx.Query(key))
}

// Filter handles GET /products/filter?minPrice=&maxPrice=&page=&size=.
func (c *ProductController) Filter(ctx *fiber.Ctx) error {
	minPrice, err := queryDecimal(ctx, "minPrice")
	if err != nil {
		return badRequest(ctx, "minPrice must be a number")
	}
	maxPrice, err := queryDecimal(ctx, "maxPrice")
	if err != nil {
		return badRequest(ctx, "maxPrice must be a number")
	}
	page := ctx.QueryInt("page", 1)
	size := ctx.QueryInt("size", services.DefaultFilterSize)

	result, err := c.productService.Filter(ctx.UserContext(), minPrice, maxPrice, page, size)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(result)
}

// Paginated handles GET /products/paginated?page=&size=.
func (c *ProductController) Paginated(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	size := ctx.QueryInt("size", services.DefaultPageSize)

	result, err := c.productService.FindPage(ctx.UserContext(), page, size)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(result)
}

func (c *ProductController) Create(ctx *fiber.Ctx) error {
	var product models.Product
	if err := ctx.BodyParser(&product); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	created, err := c.productService.Create(ctx.UserContext(), &product)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

func (c *ProductController) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var product models.Product
	if err := ctx.BodyParser(&product); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.productService.Update(ctx.UserContext(), id, &product)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

// AdjustStock handles PATCH /products/:id/stock with a body of {"delta": n}.
func (c *ProductController) AdjustStock(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var body struct {
		Delta int `json:"delta"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.productService.AdjustStock(ctx.UserContext(), id, body.Delta)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

// UpdateWithCategory handles PUT /products/:id/category/:categoryId.
func (c *ProductController) UpdateWithCategory(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	categoryID, err := paramID(ctx, "categoryId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	var product models.Product
	if err := ctx.BodyParser(&product); err != nil {
		return badRequest(ctx, "Invalid request body format")
	}
	updated, err := c.productService.UpdateWithCategory(ctx.UserContext(), id, categoryID, &product)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(updated)
}

func (c *ProductController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.productService.Delete(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// DeleteWithLinks handles DELETE /products/:id/delete.
func (c *ProductController) DeleteWithLinks(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if err := c.productService.DeleteWithLinks(ctx.UserContext(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
