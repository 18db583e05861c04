package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/middleware"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/repository"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/services"
)

func parseFloatQuery(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (h *Handler) ListProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		SellerID:  c.Query("sellerId"),
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		MinPrice:  parseFloatQuery(c, "minPrice"),
		MaxPrice:  parseFloatQuery(c, "maxPrice"),
		MinRating: parseFloatQuery(c, "rating"),
		Page:      int64(c.QueryInt("page")),
		Limit:     int64(c.QueryInt("limit")),
		SortBy:    c.Query("sortBy"),
		Order:     c.Query("order"),
	}

	page, err := h.products.List(c.Context(), filter)
	if err != nil {
		h.logDomainError("list-products", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "", fiber.Map{
		"totalProducts": page.TotalProducts,
		"totalPages":    page.TotalPages,
		"currentPage":   page.CurrentPage,
		"count":         page.Count,
		"products":      page.Products,
	})
}

func (h *Handler) GetProduct(c *fiber.Ctx) error {
	p, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		h.logDomainError("get-product", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "", fiber.Map{"product": p})
}

func (h *Handler) SellerProducts(c *fiber.Ctx) error {
	products, err := h.products.BySeller(c.Context(), c.Params("sellerId"))
	if err != nil {
		h.logDomainError("seller-products", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "", fiber.Map{
		"count":    len(products),
		"products": products,
	})
}

type addProductReq struct {
	Name         string   `json:"name" validate:"required"`
	Brand        string   `json:"brand"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Images       []string `json:"images"`
	BasePrice    float64  `json:"basePrice" validate:"gte=0"`
	CategorySlug string   `json:"categorySlug"`
	CategoryName string   `json:"categoryName"`
	SellerName   string   `json:"sellerName"`
}

func (h *Handler) AddProduct(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	var req addProductReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := h.validate.Struct(req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	productID, err := h.products.Add(c.Context(), claims, services.AddProductInput{
		Name:         req.Name,
		Brand:        req.Brand,
		Description:  req.Description,
		Tags:         req.Tags,
		Images:       req.Images,
		BasePrice:    req.BasePrice,
		CategorySlug: req.CategorySlug,
		CategoryName: req.CategoryName,
		SellerName:   req.SellerName,
	})
	if err != nil {
		h.logDomainError("add-product", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusCreated, "Product added successfully!",
		fiber.Map{"productId": productID})
}

type updateProductReq struct {
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Images       []string `json:"images"`
	BasePrice    *float64 `json:"basePrice"`
	CategorySlug string   `json:"categorySlug"`
	CategoryName string   `json:"categoryName"`
}

func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	var req updateProductReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	err := h.products.Update(c.Context(), claims, c.Params("id"), services.UpdateProductInput{
		Name:         req.Name,
		Brand:        req.Brand,
		Description:  req.Description,
		Tags:         req.Tags,
		Images:       req.Images,
		BasePrice:    req.BasePrice,
		CategorySlug: req.CategorySlug,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		h.logDomainError("update-product", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "Product updated successfully!", nil)
}

func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	if err := h.products.Delete(c.Context(), claims, c.Params("id")); err != nil {
		h.logDomainError("delete-product", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "Product deleted successfully!", nil)
}

type analyticsReq struct {
	Metric string `json:"metric" validate:"required"`
}

func (h *Handler) BumpAnalytics(c *fiber.Ctx) error {
	var req analyticsReq
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if err := h.validate.Struct(req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	if err := h.products.BumpMetric(c.Context(), c.Params("id"), req.Metric); err != nil {
		h.logDomainError("product-analytics", err)
		return failFor(c, err)
	}
	return jsonOK(c, fiber.StatusOK, "Analytics updated.", nil)
}
