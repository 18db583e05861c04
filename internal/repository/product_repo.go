package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// Analytics counters that may be bumped through the analytics endpoint.
const (
	MetricViews    = "views"
	MetricSales    = "sales"
	MetricWishlist = "wishlist"
)

type ProductRepository interface {
	Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error)

	// FindByID returns a product unless it has been soft-deleted.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)

	// FindBySeller returns a seller's non-deleted products, newest first.
	FindBySeller(ctx context.Context, sellerID string) ([]models.Product, error)

	// Search runs a filtered, paginated listing and returns the page plus the
	// total match count.
	Search(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)

	// UpdateFields applies a partial $set and reports modified count.
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)

	// SoftDelete hides the product without removing the document.
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	// IncrementMetric atomically bumps one analytics counter.
	IncrementMetric(ctx context.Context, id primitive.ObjectID, metric string) error
}
