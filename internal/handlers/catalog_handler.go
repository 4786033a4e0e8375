package handlers

import (
	"log"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CatalogHandler handles HTTP requests for categories, products and
// reviews.
type CatalogHandler struct {
	service  *services.CatalogService
	reviews  *services.ReviewService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, reviews *services.ReviewService) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		reviews:  reviews,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the browsing routes. These must be
// mounted before the session gate so they are not shadowed by it.
func (h *CatalogHandler) RegisterPublicRoutes(public fiber.Router) {
	public.Get("/categories", h.HandleGetCategories)
	public.Get("/products", h.HandleGetProducts)
	public.Get("/products/:id", h.HandleGetProduct)
}

// RegisterSessionRoutes registers review creation behind a session.
func (h *CatalogHandler) RegisterSessionRoutes(authed fiber.Router) {
	authed.Post("/products/:id/reviews", h.HandleAddReview)
}

// RegisterAdminRoutes registers catalog management behind the admin
// gate.
func (h *CatalogHandler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/categories", h.HandleCreateCategory)
	admin.Post("/products", h.HandleCreateProduct)
	admin.Put("/products/:id", h.HandleUpdateProduct)
	admin.Delete("/products/:id", h.HandleDeleteProduct)
	admin.Post("/products/:id/variants", h.HandleCreateVariant)
}

// HandleGetCategories lists all categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(categories)
}

// parseFilter builds a catalog filter from the query string. Malformed
// values are rejected here so the engine only ever sees valid input.
func parseFilter(c *fiber.Ctx) (catalog.Filter, string) {
	filter := catalog.Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, "minPrice must be a number"
		}
		filter.MinPrice = &d
	}
	if raw := c.Query("maxPrice"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, "maxPrice must be a number"
		}
		filter.MaxPrice = &d
	}
	for _, q := range []struct {
		name string
		dst  **bool
	}{
		{"inStock", &filter.InStock},
		{"featured", &filter.Featured},
		{"new", &filter.IsNew},
	} {
		if raw := c.Query(q.name); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return filter, q.name + " must be true or false"
			}
			*q.dst = &b
		}
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, "limit must be a non-negative integer"
		}
		filter.Limit = n
	}
	if !catalog.ValidSort(filter.SortBy) {
		return filter, "unknown sortBy value"
	}
	return filter, ""
}

// HandleGetProducts lists products matching the query filters, with
// variants attached.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter, problem := parseFilter(c)
	if problem != "" {
		return badRequest(c, problem)
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns the full product detail page payload.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	detail, err := h.service.GetProductDetail(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(detail)
}

// ReviewRequest is the review creation payload.
type ReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// HandleAddReview creates a review for a product on behalf of the
// authenticated user.
func (h *CatalogHandler) HandleAddReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing review body: %v", err)
		return badRequest(c, "Invalid request body")
	}

	review, err := h.reviews.AddReview(c.Params("id"), middleware.UserID(c), req.Rating, req.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleCreateCategory creates a category (admin).
func (h *CatalogHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid input",
			"errors":  validationMessages(err),
		})
	}
	if err := h.service.CreateCategory(&category); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleCreateProduct creates a product (admin).
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid input",
			"errors":  validationMessages(err),
		})
	}
	if !product.Price.IsPositive() {
		return badRequest(c, "price must be positive")
	}
	if err := h.service.CreateProduct(&product); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates a product (admin).
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid input",
			"errors":  validationMessages(err),
		})
	}
	if err := h.service.UpdateProduct(&product); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product (admin).
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleCreateVariant adds a variant to a product (admin).
func (h *CatalogHandler) HandleCreateVariant(c *fiber.Ctx) error {
	var variant models.ProductVariant
	if err := c.BodyParser(&variant); err != nil {
		return badRequest(c, "Invalid request body")
	}
	variant.ProductID = c.Params("id")
	if err := h.validate.Struct(variant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid input",
			"errors":  validationMessages(err),
		})
	}
	if err := h.service.CreateVariant(&variant); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(variant)
}
