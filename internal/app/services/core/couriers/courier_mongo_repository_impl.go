package couriers

import (
	"context"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourierMongoRepository struct {
	Collection *mongo.Collection
}

func NewCourierMongoRepository(db *mongo.Client, dbName string) contracts.CourierRepository {
	return &CourierMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCouriers),
	}
}

func (r *CourierMongoRepository) FindByID(ctx context.Context, courierID string) (*models.Courier, error) {
	var courier models.Courier
	err := r.Collection.FindOne(ctx, bson.M{"_id": courierID}).Decode(&courier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &courier, nil
}

func (r *CourierMongoRepository) ListByStatus(ctx context.Context, status models.CourierStatus) ([]models.Courier, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var couriers []models.Courier
	if err := cursor.All(ctx, &couriers); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return couriers, nil
}

// ClaimAvailable flips Available to Busy only when the courier is still
// Available at write time. Two orders racing for the same courier both pass
// the listing check, but only one write matches here.
func (r *CourierMongoRepository) ClaimAvailable(ctx context.Context, courierID string) (*models.Courier, error) {
	filter := bson.M{"_id": courierID, "status": models.CourierAvailable}
	update := bson.M{"$set": bson.M{
		"status":    models.CourierBusy,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var courier models.Courier
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&courier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &courier, nil
}

func (r *CourierMongoRepository) Release(ctx context.Context, courierID string) error {
	filter := bson.M{"_id": courierID, "status": models.CourierBusy}
	update := bson.M{"$set": bson.M{
		"status":    models.CourierAvailable,
		"updatedAt": time.Now(),
	}}

	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
