package controllers

import "github.com/gofiber/fiber/v2"

// Handlers bundles every controller mounted by RegisterRoutes.
type Handlers struct {
	Orders     *OrderController
	Customers  *CustomerController
	Products   *ProductController
	Categories *CategoryController
	Seasons    *SeasonController
}

// RegisterRoutes mounts the API on router. Static segments are registered
// before the :id routes that would otherwise shadow them.
func RegisterRoutes(router fiber.Router, h Handlers) {
	orders := router.Group("/orders")
	orders.Post("/checkout", h.Orders.Checkout)
	orders.Put("/order-status/:orderId", h.Orders.UpdateStatus)
	orders.Get("/customer/:customerId", h.Orders.FindByCustomer)
	orders.Get("/", h.Orders.FindAll)
	orders.Post("/", h.Orders.Create)
	orders.Get("/:orderId/details", h.Orders.FindDetails)
	orders.Post("/:orderId/details", h.Orders.AddDetail)
	orders.Put("/:orderId/details/:productId", h.Orders.UpdateDetail)
	orders.Delete("/:orderId/details/:productId", h.Orders.DeleteDetail)
	orders.Post("/:orderId/recalculate-total", h.Orders.RecalculateTotal)
	orders.Get("/:id", h.Orders.FindByID)
	orders.Put("/:id", h.Orders.Update)
	orders.Delete("/:id", h.Orders.Delete)

	customers := router.Group("/customers")
	customers.Post("/login", h.Customers.Login)
	customers.Get("/", h.Customers.FindAll)
	customers.Post("/", h.Customers.Create)
	customers.Get("/:id", h.Customers.FindByID)
	customers.Put("/:id", h.Customers.Update)
	customers.Delete("/:id", h.Customers.Delete)

	products := router.Group("/products")
	products.Get("/search/:keyword", h.Products.Search)
	products.Get("/filter", h.Products.Filter)
	products.Get("/paginated", h.Products.Paginated)
	products.Get("/", h.Products.FindTop)
	products.Post("/", h.Products.Create)
	products.Put("/:id/category/:categoryId", h.Products.UpdateWithCategory)
	products.Delete("/:id/delete", h.Products.DeleteWithLinks)
	products.Get("/:id", h.Products.FindByID)
	products.Put("/:id", h.Products.Update)
	products.Patch("/:id/stock", h.Products.AdjustStock)
	products.Delete("/:id", h.Products.Delete)

	categories := router.Group("/categories")
	categories.Get("/parents", h.Categories.FindParents)
	categories.Get("/", h.Categories.FindAll)
	categories.Post("/", h.Categories.Create)
	categories.Get("/:id/subcategories", h.Categories.FindSubcategories)
	categories.Get("/:id/products", h.Categories.FindProducts)
	categories.Post("/:id/products/:productId", h.Categories.LinkProduct)
	categories.Delete("/:id/products/:productId", h.Categories.UnlinkProduct)
	categories.Get("/:id", h.Categories.FindByID)
	categories.Put("/:id", h.Categories.Update)
	categories.Delete("/:id", h.Categories.Delete)

	seasons := router.Group("/seasons")
	seasons.Get("/all", h.Seasons.FindAll)
	seasons.Get("/", h.Seasons.FindActive)
	seasons.Post("/", h.Seasons.Create)
	seasons.Put("/:id/status", h.Seasons.UpdateStatus)
	seasons.Get("/:seasonId/products", h.Seasons.FindProducts)
	seasons.Post("/:seasonId/products/:productId", h.Seasons.AddProduct)
	seasons.Delete("/:seasonId/products/:productId", h.Seasons.RemoveProduct)
	seasons.Get("/:id", h.Seasons.FindByID)
	seasons.Put("/:id", h.Seasons.Update)
	seasons.Delete("/:id", h.Seasons.Delete)
}
