package repository

import (
	"context"

	apperrors "purchase-service/common/errors"
	"purchase-service/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// caseInsensitive compares strings ignoring case and diacritic-insensitive
// per the "en" collation, which is what the triple lookup index uses.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

type CatalogRepository struct {
	collection *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		collection: db.Collection("products"),
	}
}

func (r *CatalogRepository) FindByScanCode(ctx context.Context, scanCode string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"scan_code": scanCode}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CatalogRepository) FindByNameBrandUnit(ctx context.Context, name, brand, unitOfMeasure string) (*models.Product, error) {
	filter := bson.M{"name": name, "brand": brand, "unit_of_measure": unitOfMeasure}
	findOptions := options.FindOne().SetCollation(&caseInsensitive)

	var product models.Product
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CatalogRepository) Find(ctx context.Context, limit, skip int) ([]models.Product, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *CatalogRepository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	findOptions := options.Find().SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *CatalogRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrCatalogConflict
	}
	return err
}

// EnsureIndexes creates the scan-code uniqueness index, the case-insensitive
// triple index, and the text index used by name search. The unique index is
// the only defence against two concurrent first-sightings of the same scan
// code.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "scan_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "name", Value: 1},
				{Key: "brand", Value: 1},
				{Key: "unit_of_measure", Value: 1},
			},
			Options: options.Index().SetCollation(&caseInsensitive),
		},
		{
			Keys: bson.D{{Key: "name", Value: "text"}},
		},
	})
	return err
}
