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

// BusRepository is a MongoDB implementation of repository.BusRepository.
type BusRepository struct {
	buses *mongo.Collection
}

// NewBusRepository creates a new MongoDB bus repository.
func NewBusRepository(db *mongo.Database) *BusRepository {
	return &BusRepository{buses: db.Collection(busesCollection)}
}

type busDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OperatorID  string             `bson:"operatorId"`
	Name        string             `bson:"name"`
	PlateNumber string             `bson:"plateNumber,omitempty"`
	SeatCount   int                `bson:"seatCount,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
}

func (d *busDoc) toDomain() *domain.Bus {
	return &domain.Bus{
		ID:          d.ID.Hex(),
		OperatorID:  d.OperatorID,
		Name:        d.Name,
		PlateNumber: d.PlateNumber,
		SeatCount:   d.SeatCount,
		CreatedAt:   d.CreatedAt,
	}
}

// Create persists a new bus and assigns its identifier.
func (r *BusRepository) Create(ctx context.Context, bus *domain.Bus) error {
	doc := &busDoc{
		OperatorID:  bus.OperatorID,
		Name:        bus.Name,
		PlateNumber: bus.PlateNumber,
		SeatCount:   bus.SeatCount,
		CreatedAt:   bus.CreatedAt,
	}
	res, err := r.buses.InsertOne(ctx, doc)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		bus.ID = oid.Hex()
	}
	return nil
}

// GetByID retrieves a bus by ID.
func (r *BusRepository) GetByID(ctx context.Context, id string) (*domain.Bus, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc busDoc
	if err := r.buses.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toDomain(), nil
}

// GetByOperatorID retrieves all buses owned by an operator.
func (r *BusRepository) GetByOperatorID(ctx context.Context, operatorID string) ([]*domain.Bus, error) {
	cursor, err := r.buses.Find(ctx, bson.M{"operatorId": operatorID})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var buses []*domain.Bus
	for cursor.Next(ctx) {
		var doc busDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapErr(err)
		}
		buses = append(buses, doc.toDomain())
	}
	return buses, mapErr(cursor.Err())
}

// Ensure BusRepository implements repository.BusRepository.
var _ repository.BusRepository = (*BusRepository)(nil)
