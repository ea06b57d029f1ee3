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

// EventRepository is a MongoDB implementation of repository.EventRepository.
type EventRepository struct {
	events *mongo.Collection
}

// NewEventRepository creates a new MongoDB event repository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{events: db.Collection(eventsCollection)}
}

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OrganizerID string             `bson:"organizerId"`
	Title       string             `bson:"title"`
	Venue       string             `bson:"venue,omitempty"`
	StartsAt    flexTime           `bson:"startsAt"`
	Price       float64            `bson:"price,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:          d.ID.Hex(),
		OrganizerID: d.OrganizerID,
		Title:       d.Title,
		Venue:       d.Venue,
		StartsAt:    d.StartsAt.Time(),
		Price:       d.Price,
		CreatedAt:   d.CreatedAt,
	}
}

// Create persists a new event and assigns its identifier.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	doc := &eventDoc{
		OrganizerID: event.OrganizerID,
		Title:       event.Title,
		Venue:       event.Venue,
		StartsAt:    flexTime(event.StartsAt),
		Price:       event.Price,
		CreatedAt:   event.CreatedAt,
	}
	res, err := r.events.InsertOne(ctx, doc)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc eventDoc
	if err := r.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toDomain(), nil
}

// GetAll retrieves all events.
func (r *EventRepository) GetAll(ctx context.Context) ([]*domain.Event, error) {
	cursor, err := r.events.Find(ctx, bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var events []*domain.Event
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapErr(err)
		}
		events = append(events, doc.toDomain())
	}
	return events, mapErr(cursor.Err())
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.events.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Ensure EventRepository implements repository.EventRepository.
var _ repository.EventRepository = (*EventRepository)(nil)
