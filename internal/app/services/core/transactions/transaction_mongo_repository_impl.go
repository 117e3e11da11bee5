package transactions

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

type TransactionMongoRepository struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

func NewTransactionMongoRepository(db *mongo.Client, dbName string) contracts.TransactionRepository {
	return &TransactionMongoRepository{
		Client:     db,
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTransactions),
	}
}

func (r *TransactionMongoRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) (string, error) {
	result, err := r.Collection.InsertOne(ctx, transaction)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *TransactionMongoRepository) FindByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var transaction models.Transaction
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &transaction, nil
}

// Verify is the single-shot terminal write: the filter only matches while the
// transaction is still pending verification.
func (r *TransactionMongoRepository) Verify(ctx context.Context, transactionID string, status models.TransactionStatus, verifierID string) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{"_id": objectID, "status": models.TransactionPendingVerification}
	update := bson.M{"$set": bson.M{
		"status":     status,
		"verifierId": verifierID,
		"verifiedAt": now,
		"updatedAt":  now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var transaction models.Transaction
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &transaction, nil
}

func (r *TransactionMongoRepository) MarkEffectApplied(ctx context.Context, transactionID string) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "effectApplied": false}
	update := bson.M{"$set": bson.M{
		"effectApplied": true,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var transaction models.Transaction
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &transaction, nil
}

// WithTransaction wraps fn in a causally consistent session transaction.
// Standalone deployments reject multi-document transactions, so a session
// start failure falls back to running fn on the plain context.
func (r *TransactionMongoRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.Client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
