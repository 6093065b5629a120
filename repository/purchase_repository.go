package repository

import (
	"context"
	"strings"
	"time"

	"purchase-service/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PurchaseRepository struct {
	collection *mongo.Collection
}

func NewPurchaseRepository(db *mongo.Database) *PurchaseRepository {
	return &PurchaseRepository{
		collection: db.Collection("purchases"),
	}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	_, err := r.collection.InsertOne(ctx, purchase)
	return err
}

func (r *PurchaseRepository) FindByID(ctx context.Context, userID string, id uuid.UUID) (*models.Purchase, error) {
	filter := bson.M{"_id": id, "user_id": userID}
	var purchase models.Purchase
	err := r.collection.FindOne(ctx, filter).Decode(&purchase)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) FindByUser(ctx context.Context, userID string, opts PurchaseListOptions) ([]models.Purchase, int64, error) {
	filter := rangeFilter(userID, opts.From, opts.To)

	sortField := "created_at"
	sortDir := -1
	if opts.Sort != "" {
		sortField = strings.TrimPrefix(opts.Sort, "-")
		if !strings.HasPrefix(opts.Sort, "-") {
			sortDir = 1
		}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetLimit(int64(opts.Limit)).
		SetSkip(int64((opts.Page - 1) * opts.Limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var purchases []models.Purchase
	if err = cursor.All(ctx, &purchases); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

func (r *PurchaseRepository) FindInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Purchase, error) {
	fromCopy, toCopy := from, to
	filter := rangeFilter(userID, &fromCopy, &toCopy)

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []models.Purchase
	if err = cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *PurchaseRepository) CreatedAtInRange(ctx context.Context, userID string, from, to time.Time) ([]time.Time, error) {
	fromCopy, toCopy := from, to
	filter := rangeFilter(userID, &fromCopy, &toCopy)

	findOptions := options.Find().
		SetProjection(bson.M{"created_at": 1, "_id": 0}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	times := make([]time.Time, len(docs))
	for i, d := range docs {
		times[i] = d.CreatedAt
	}
	return times, nil
}

func (r *PurchaseRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	return err
}

func rangeFilter(userID string, from, to *time.Time) bson.M {
	filter := bson.M{"user_id": userID}
	created := bson.M{}
	if from != nil {
		created["$gte"] = *from
	}
	if to != nil {
		created["$lte"] = *to
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}
