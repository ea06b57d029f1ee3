package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// PaymentRepository is a MongoDB implementation of repository.PaymentRepository.
type PaymentRepository struct {
	payments *mongo.Collection
}

// NewPaymentRepository creates a new MongoDB payment repository.
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{payments: db.Collection(paymentsCollection)}
}

type paymentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"userId"`
	TripID       string             `bson:"tripId"`
	Amount       float64            `bson:"amount"`
	Currency     string             `bson:"currency"`
	ClientSecret string             `bson:"clientSecret"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty"`
}

func (d *paymentDoc) toDomain() *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		TripID:       d.TripID,
		Amount:       d.Amount,
		Currency:     d.Currency,
		ClientSecret: d.ClientSecret,
		Status:       domain.PaymentIntentStatus(d.Status),
		CreatedAt:    d.CreatedAt,
	}
}

// Create persists a new payment intent and assigns its identifier.
func (r *PaymentRepository) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	doc := &paymentDoc{
		UserID:       intent.UserID,
		TripID:       intent.TripID,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		CreatedAt:    intent.CreatedAt,
	}
	res, err := r.payments.InsertOne(ctx, doc)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		intent.ID = oid.Hex()
	}
	return nil
}

// GetByID retrieves a payment intent by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc paymentDoc
	if err := r.payments.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toDomain(), nil
}

// Ensure PaymentRepository implements repository.PaymentRepository.
var _ repository.PaymentRepository = (*PaymentRepository)(nil)
