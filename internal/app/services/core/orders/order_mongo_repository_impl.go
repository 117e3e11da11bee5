package orders

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

type OrderMongoRepository struct {
	Collection *mongo.Collection
}

func NewOrderMongoRepository(db *mongo.Client, dbName string) contracts.OrderRepository {
	return &OrderMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionOrders),
	}
}

func (r *OrderMongoRepository) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	result, err := r.Collection.InsertOne(ctx, order)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *OrderMongoRepository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var order models.Order
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &order, nil
}

func (r *OrderMongoRepository) SubmitPayment(ctx context.Context, orderID, transactionRef string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{"_id": objectID, "paymentStatus": models.PaymentPending}
	update := bson.M{"$set": bson.M{
		"paymentStatus":  models.PaymentProcessing,
		"transactionRef": transactionRef,
		"updatedAt":      time.Now(),
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *OrderMongoRepository) ApplyPaymentOutcome(ctx context.Context, orderID string, outcome models.VerificationOutcome) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{
		"_id":           objectID,
		"paymentStatus": models.PaymentProcessing,
		"status":        models.OrderPending,
	}

	var update bson.M
	if outcome == models.OutcomePaid {
		update = bson.M{"$set": bson.M{
			"paymentStatus": models.PaymentPaid,
			"status":        models.OrderProcessing,
			"processingAt":  now,
			"updatedAt":     now,
		}}
	} else {
		update = bson.M{"$set": bson.M{
			"paymentStatus": models.PaymentRejected,
			"status":        models.OrderCancelled,
			"cancelReason":  "payment rejected",
			"cancelledAt":   now,
			"updatedAt":     now,
		}}
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

// AssignCourier is the dispatch hand-off. The filter demands a paid,
// processing order with no courier set, so a second assignment attempt
// matches nothing and the courier field is never silently overwritten.
func (r *OrderMongoRepository) AssignCourier(ctx context.Context, orderID, courierID, courierName string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{
		"_id":           objectID,
		"status":        models.OrderProcessing,
		"paymentStatus": models.PaymentPaid,
		"courierId":     bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.OrderDispatched,
		"courierId":    courierID,
		"courierName":  courierName,
		"dispatchedAt": now,
		"updatedAt":    now,
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *OrderMongoRepository) MarkDelivered(ctx context.Context, orderID string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{"_id": objectID, "status": models.OrderDispatched}
	update := bson.M{"$set": bson.M{
		"status":      models.OrderDelivered,
		"deliveredAt": now,
		"updatedAt":   now,
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *OrderMongoRepository) Cancel(ctx context.Context, orderID, reason string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	now := time.Now()
	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": []models.OrderStatus{models.OrderPending, models.OrderProcessing}},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.OrderCancelled,
		"cancelReason": reason,
		"cancelledAt":  now,
		"updatedAt":    now,
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *OrderMongoRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &order, nil
}
