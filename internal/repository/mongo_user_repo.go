package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MernStackExpert/bazzer-ecommerch-server/internal/models"
)

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database, collection string) UserRepository {
	col := db.Collection(collection)
	// unique email backstop for the duplicate-account check
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoUserRepo{col: col}
}

func (r *mongoUserRepo) Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) MarkVerified(ctx context.Context, email string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set":   bson.M{"isVerified": true},
		"$unset": bson.M{"verificationCode": "", "codeExpires": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepo) SetLoginCode(ctx context.Context, email, code string, expires time.Time) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"verificationCode": code,
			"codeExpires":      expires,
			"loginAttempts":    0,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepo) ClearPendingCode(ctx context.Context, email string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$unset": bson.M{"verificationCode": "", "codeExpires": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IncrementLoginAttempts relies on a single findAndModify so concurrent
// wrong-password attempts against one account cannot lose updates.
func (r *mongoUserRepo) IncrementLoginAttempts(ctx context.Context, email string) (int, error) {
	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$inc": bson.M{"loginAttempts": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return u.LoginAttempts, nil
}

func (r *mongoUserRepo) Lock(ctx context.Context, email string, until time.Time) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"loginAttempts": 0, "lockUntil": until},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
