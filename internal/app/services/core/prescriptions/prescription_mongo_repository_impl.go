package prescriptions

import (
	"context"
	"time"

	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PrescriptionMongoRepository struct {
	Collection *mongo.Collection
}

func NewPrescriptionMongoRepository(db *mongo.Client, dbName string) contracts.PrescriptionRepository {
	return &PrescriptionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPrescriptions),
	}
}

func (r *PrescriptionMongoRepository) CreatePrescription(ctx context.Context, prescription *models.Prescription) (string, error) {
	result, err := r.Collection.InsertOne(ctx, prescription)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *PrescriptionMongoRepository) FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	objectID, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var prescription models.Prescription
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&prescription)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &prescription, nil
}

func (r *PrescriptionMongoRepository) FindByLookupCode(ctx context.Context, lookupCode string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.Collection.FindOne(ctx, bson.M{"lookupCode": lookupCode}).Decode(&prescription)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &prescription, nil
}

// Lock is the exclusive-claim write. The filter carries the expected issued
// status, so of two pharmacies racing only the first matches a document; the
// second gets mongo.ErrNoDocuments and the usecase classifies it.
func (r *PrescriptionMongoRepository) Lock(ctx context.Context, prescriptionID, pharmacyID, pharmacyName string) (*models.Prescription, error) {
	objectID, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{"_id": objectID, "status": models.PrescriptionIssued}
	update := bson.M{"$set": bson.M{
		"status":       models.PrescriptionLocked,
		"pharmacyId":   pharmacyID,
		"pharmacyName": pharmacyName,
		"lockedAt":     now,
		"updatedAt":    now,
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *PrescriptionMongoRepository) Dispense(ctx context.Context, prescriptionID, pharmacyID string) (*models.Prescription, error) {
	objectID, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{
		"_id":        objectID,
		"status":     models.PrescriptionLocked,
		"pharmacyId": pharmacyID,
	}
	update := bson.M{"$set": bson.M{
		"status":      models.PrescriptionDispensed,
		"dispensedAt": now,
		"updatedAt":   now,
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *PrescriptionMongoRepository) Cancel(ctx context.Context, prescriptionID, reason string) (*models.Prescription, error) {
	objectID, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": []models.PrescriptionStatus{models.PrescriptionIssued, models.PrescriptionLocked}},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.PrescriptionCancelled,
		"cancelReason": reason,
		"cancelledAt":  now,
		"updatedAt":    now,
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *PrescriptionMongoRepository) Expire(ctx context.Context, prescriptionID string, now time.Time) (*models.Prescription, error) {
	objectID, err := primitive.ObjectIDFromHex(prescriptionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":       objectID,
		"status":    bson.M{"$in": []models.PrescriptionStatus{models.PrescriptionIssued, models.PrescriptionLocked}},
		"expiresAt": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.PrescriptionExpired,
		"expiredAt": now,
		"updatedAt": now,
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *PrescriptionMongoRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Prescription, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var prescription models.Prescription
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&prescription)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &prescription, nil
}
