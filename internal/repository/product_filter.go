package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 30
)

// ProductFilter is the typed criteria set for catalog listings. Zero values
// mean "not filtered". It is translated to the store's native query form by
// Query and Sort so filter semantics stay testable without a database.
type ProductFilter struct {
	SellerID  string
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Page      int64
	Limit     int64
	SortBy    string
	Order     string
}

// Query builds the listing filter. Listings only ever see approved,
// non-deleted products.
func (f ProductFilter) Query() bson.M {
	q := bson.M{
		"status.approval":  models.ApprovalApproved,
		"status.isDeleted": false,
	}

	if f.SellerID != "" {
		q["seller.sellerId"] = f.SellerID
	}
	if f.Category != "" {
		q["category.slug"] = f.Category
	}
	if f.Search != "" {
		search := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"name": search},
			bson.M{"brand": search},
			bson.M{"tags": bson.M{"$in": bson.A{search}}},
		}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["pricing.basePrice"] = price
	}
	if f.MinRating != nil {
		q["rating.average"] = bson.M{"$gte": *f.MinRating}
	}
	return q
}

// Sort resolves the sort order, defaulting to newest first. "price" maps to
// the nested base price field.
func (f ProductFilter) Sort() bson.D {
	if f.SortBy == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	field := f.SortBy
	if field == "price" {
		field = "pricing.basePrice"
	}
	order := 1
	if f.Order == "desc" {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// PageLimit normalizes pagination and returns (page, limit, skip).
func (f ProductFilter) PageLimit() (int64, int64, int64) {
	page := f.Page
	if page < 1 {
		page = defaultPage
	}
	limit := f.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}
