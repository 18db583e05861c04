package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/clock"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/repository"
	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/token"
)

// ProductPage is one page of catalog listing results.
type ProductPage struct {
	TotalProducts int64            `json:"totalProducts"`
	TotalPages    int64            `json:"totalPages"`
	CurrentPage   int64            `json:"currentPage"`
	Count         int              `json:"count"`
	Products      []models.Product `json:"products"`
}

// AddProductInput is the caller-supplied part of a new product. Status,
// analytics, rating, slug, and seller identity are assigned server-side.
type AddProductInput struct {
	Name         string
	Brand        string
	Description  string
	Tags         []string
	Images       []string
	BasePrice    float64
	CategorySlug string
	CategoryName string
	SellerName   string
}

// UpdateProductInput carries the optional fields of a partial update.
type UpdateProductInput struct {
	Name         string
	Brand        string
	Description  string
	Tags         []string
	Images       []string
	BasePrice    *float64
	CategorySlug string
	CategoryName string
}

type ProductService struct {
	products repository.ProductRepository
	clock    clock.Clock
	log      *zap.SugaredLogger
}

func NewProductService(products repository.ProductRepository, clk clock.Clock, log *zap.SugaredLogger) *ProductService {
	return &ProductService{products: products, clock: clk, log: log}
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) (*ProductPage, error) {
	products, total, err := s.products.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	page, limit, _ := f.PageLimit()
	totalPages := (total + limit - 1) / limit
	return &ProductPage{
		TotalProducts: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
		Count:         len(products),
		Products:      products,
	}, nil
}

func (s *ProductService) Get(ctx context.Context, idHex string) (*models.Product, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrInvalidID
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return p, nil
}

func (s *ProductService) BySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	products, err := s.products.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return products, nil
}

// Add creates a product owned by the authenticated seller. The slug is the
// lowercased name with spaces dashed, suffixed with the creation timestamp.
func (s *ProductService) Add(ctx context.Context, claims *token.Claims, in AddProductInput) (string, error) {
	if d := CanAddProduct(claims); !d.Allowed {
		return "", &ForbiddenError{Reason: d.Reason}
	}

	now := s.clock.Now()
	p := &models.Product{
		Name:        in.Name,
		Slug:        fmt.Sprintf("%s-%d", strings.ReplaceAll(strings.ToLower(in.Name), " ", "-"), now.UnixMilli()),
		Brand:       in.Brand,
		Description: in.Description,
		Tags:        in.Tags,
		Images:      in.Images,
		Pricing:     models.ProductPricing{BasePrice: in.BasePrice},
		Seller:      models.ProductSeller{SellerID: claims.ID, Name: in.SellerName},
		Category:    models.ProductCategory{Slug: in.CategorySlug, Name: in.CategoryName},
		Status: models.ProductStatus{
			Approval:  models.ApprovalApproved,
			IsActive:  true,
			IsDeleted: false,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.products.Insert(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return id.Hex(), nil
}

// Update applies a partial update after the ownership policy check passes.
func (s *ProductService) Update(ctx context.Context, claims *token.Claims, idHex string, in UpdateProductInput) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrInvalidID
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if d := CanMutateProduct(claims, p); !d.Allowed {
		return &ForbiddenError{Reason: d.Reason}
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Brand != "" {
		fields["brand"] = in.Brand
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.Tags != nil {
		fields["tags"] = in.Tags
	}
	if in.Images != nil {
		fields["images"] = in.Images
	}
	if in.BasePrice != nil {
		fields["pricing.basePrice"] = *in.BasePrice
	}
	if in.CategorySlug != "" {
		fields["category.slug"] = in.CategorySlug
	}
	if in.CategoryName != "" {
		fields["category.name"] = in.CategoryName
	}
	if len(fields) == 0 {
		return ErrNoChanges
	}
	fields["updatedAt"] = s.clock.Now()

	if _, err := s.products.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// Delete soft-deletes a product after the ownership policy check passes.
func (s *ProductService) Delete(ctx context.Context, claims *token.Claims, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrInvalidID
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if d := CanMutateProduct(claims, p); !d.Allowed {
		return &ForbiddenError{Reason: d.Reason}
	}

	if err := s.products.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}

// BumpMetric increments one of the views/sales/wishlist counters.
func (s *ProductService) BumpMetric(ctx context.Context, idHex, metric string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return ErrInvalidID
	}
	switch metric {
	case repository.MetricViews, repository.MetricSales, repository.MetricWishlist:
	default:
		return fmt.Errorf("%w: metric must be one of views, sales, wishlist", ErrValidation)
	}
	if err := s.products.IncrementMetric(ctx, id, metric); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}
