package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ApprovalApproved = "approved"

type ProductStatus struct {
	Approval  string `bson:"approval" json:"approval"`
	IsActive  bool   `bson:"isActive" json:"isActive"`
	IsDeleted bool   `bson:"isDeleted" json:"isDeleted"`
}

type ProductAnalytics struct {
	Views         int64 `bson:"views" json:"views"`
	SalesCount    int64 `bson:"salesCount" json:"salesCount"`
	WishlistCount int64 `bson:"wishlistCount" json:"wishlistCount"`
}

type ProductRating struct {
	Average      float64 `bson:"average" json:"average"`
	TotalReviews int64   `bson:"totalReviews" json:"totalReviews"`
}

type ProductPricing struct {
	BasePrice float64 `bson:"basePrice" json:"basePrice"`
}

type ProductSeller struct {
	SellerID string `bson:"sellerId" json:"sellerId"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
}

type ProductCategory struct {
	Slug string `bson:"slug" json:"slug"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
}

// Product is a catalog document. Removal is always a soft delete via
// Status.IsDeleted; listings only ever see approved, non-deleted products.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Pricing     ProductPricing     `bson:"pricing" json:"pricing"`
	Seller      ProductSeller      `bson:"seller" json:"seller"`
	Category    ProductCategory    `bson:"category" json:"category"`
	Status      ProductStatus      `bson:"status" json:"status"`
	Analytics   ProductAnalytics   `bson:"analytics" json:"analytics"`
	Rating      ProductRating      `bson:"rating" json:"rating"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
