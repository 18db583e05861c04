package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
)

type mongoProductRepo struct {
	col *mongo.Collection
}

func NewMongoProductRepo(db *mongo.Database, collection string) ProductRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller.sellerId", Value: 1}}},
		{Keys: bson.D{{Key: "category.slug", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return &mongoProductRepo{col: col}
}

func (r *mongoProductRepo) Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *mongoProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id, "status.isDeleted": false}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepo) FindBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"seller.sellerId": sellerID, "status.isDeleted": false},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *mongoProductRepo) Search(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	query := f.Query()

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	_, limit, skip := f.PageLimit()
	cur, err := r.col.Find(ctx, query,
		options.Find().SetSort(f.Sort()).SetSkip(skip).SetLimit(limit),
	)
	if err != nil {
		return nil, 0, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *mongoProductRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 0 {
		return 0, ErrProductNotFound
	}
	return res.ModifiedCount, nil
}

func (r *mongoProductRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status.isDeleted": true, "status.isActive": false},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepo) IncrementMetric(ctx context.Context, id primitive.ObjectID, metric string) error {
	var field string
	switch metric {
	case MetricViews:
		field = "analytics.views"
	case MetricSales:
		field = "analytics.salesCount"
	case MetricWishlist:
		field = "analytics.wishlistCount"
	default:
		return fmt.Errorf("unknown analytics metric %q", metric)
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
