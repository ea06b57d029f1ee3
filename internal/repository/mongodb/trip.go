package mongodb

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rakib1514/tickto-server/internal/domain"
	"github.com/Rakib1514/tickto-server/internal/repository"
)

// TripRepository is a MongoDB implementation of repository.TripRepository.
type TripRepository struct {
	trips *mongo.Collection
}

// NewTripRepository creates a new MongoDB trip repository.
func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{trips: db.Collection(tripsCollection)}
}

// tripDoc is the stored shape of a trip. Departure and arrival decode
// through flexTime because legacy rows hold string-typed timestamps.
type tripDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OrganizerID   string             `bson:"organizerId"`
	BusID         string             `bson:"busId"`
	Origin        string             `bson:"origin"`
	Destination   string             `bson:"destination"`
	DepartureTime flexTime           `bson:"departureTime"`
	ArrivalTime   flexTime           `bson:"arrivalTime"`
	Price         float64            `bson:"price,omitempty"`
	SeatCount     int                `bson:"seatCount,omitempty"`
	Status        string             `bson:"status,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty"`
}

func (d *tripDoc) toDomain() *domain.Trip {
	return &domain.Trip{
		ID:            d.ID.Hex(),
		OrganizerID:   d.OrganizerID,
		BusID:         d.BusID,
		Origin:        domain.Location(d.Origin),
		Destination:   domain.Location(d.Destination),
		DepartureTime: d.DepartureTime.Time(),
		ArrivalTime:   d.ArrivalTime.Time(),
		Price:         d.Price,
		SeatCount:     d.SeatCount,
		Status:        domain.TripStatus(d.Status),
		CreatedAt:     d.CreatedAt,
	}
}

func tripToDoc(t *domain.Trip) *tripDoc {
	return &tripDoc{
		OrganizerID:   t.OrganizerID,
		BusID:         t.BusID,
		Origin:        string(t.Origin),
		Destination:   string(t.Destination),
		DepartureTime: flexTime(t.DepartureTime),
		ArrivalTime:   flexTime(t.ArrivalTime),
		Price:         t.Price,
		SeatCount:     t.SeatCount,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
	}
}

// coerceDate wraps a field path in a $convert to date that yields null
// instead of failing on uncoercible values. Comparisons against null then
// resolve by BSON sort order (null before any date), which keeps garbage
// rows out of the active and upcoming buckets.
func coerceDate(fieldPath string) bson.M {
	return bson.M{"$convert": bson.M{
		"input":   fieldPath,
		"to":      "date",
		"onError": primitive.Null{},
		"onNull":  primitive.Null{},
	}}
}

// coerceObjectID converts a loosely-typed reference field to an ObjectID,
// yielding null for malformed values so a failed coercion drops the row
// at the join instead of aborting the whole pipeline.
func coerceObjectID(fieldPath string) bson.M {
	return bson.M{"$convert": bson.M{
		"input":   fieldPath,
		"to":      "objectId",
		"onError": primitive.Null{},
		"onNull":  primitive.Null{},
	}}
}

// anchoredPattern builds a case-insensitive full-match pattern for a
// literal location value. The stored value may carry surrounding
// whitespace, so the anchors tolerate it.
func anchoredPattern(literal string) primitive.Regex {
	return primitive.Regex{Pattern: `^\s*` + regexp.QuoteMeta(literal) + `\s*$`, Options: "i"}
}

// prefixPattern builds a case-insensitive prefix pattern for a literal
// search text.
func prefixPattern(literal string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(literal), Options: "i"}
}

// buildTripFilter translates a structured filter into a BSON filter
// document. Time predicates go through coerceDate so string-typed rows
// still compare temporally.
func buildTripFilter(f repository.TripFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.OrganizerID != "" {
		filter["organizerId"] = f.OrganizerID
	}

	var exprs []bson.M
	timeExpr := func(op string, fieldPath string, t time.Time) bson.M {
		return bson.M{op: bson.A{coerceDate(fieldPath), primitive.NewDateTimeFromTime(t)}}
	}
	if f.DepartureBefore != nil {
		exprs = append(exprs, timeExpr("$lt", "$departureTime", *f.DepartureBefore))
	}
	if f.DepartureAfter != nil {
		exprs = append(exprs, timeExpr("$gt", "$departureTime", *f.DepartureAfter))
	}
	if f.DepartureAtOrBefore != nil {
		exprs = append(exprs, timeExpr("$lte", "$departureTime", *f.DepartureAtOrBefore))
	}
	if f.ArrivalBefore != nil {
		exprs = append(exprs, timeExpr("$lt", "$arrivalTime", *f.ArrivalBefore))
	}
	if f.ArrivalAtOrAfter != nil {
		exprs = append(exprs, timeExpr("$gte", "$arrivalTime", *f.ArrivalAtOrAfter))
	}
	if f.WellFormed != nil {
		op := "$lte"
		if !*f.WellFormed {
			op = "$gt"
		}
		exprs = append(exprs, bson.M{op: bson.A{coerceDate("$departureTime"), coerceDate("$arrivalTime")}})
	}
	if len(exprs) > 0 {
		filter["$expr"] = bson.M{"$and": exprs}
	}
	return filter
}

// buildAvailabilityPipeline composes the availability aggregation in a
// single round trip: match upcoming trips against the query, coerce the
// bus reference and departure time, inner-join the bus, sort ascending.
func buildAvailabilityPipeline(q repository.AvailabilityQuery) mongo.Pipeline {
	match := bson.M{"status": string(domain.TripStatusUpcoming)}
	if q.Origin != "" {
		match["origin"] = anchoredPattern(q.Origin)
	}
	if q.Destination != "" {
		match["destination"] = anchoredPattern(q.Destination)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$addFields", Value: bson.M{
			"departureAt": coerceDate("$departureTime"),
			"busRef":      coerceObjectID("$busId"),
		}}},
	}

	if q.DepartureDate != nil {
		day := q.DepartureDate.UTC().Format("2006-01-02")
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$eq": bson.A{
				bson.M{"$dateToString": bson.M{
					"format":   "%Y-%m-%d",
					"date":     "$departureAt",
					"timezone": "UTC",
					"onNull":   primitive.Null{},
				}},
				day,
			}},
		}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         busesCollection,
			"localField":   "busRef",
			"foreignField": "_id",
			"as":           "busDetails",
		}}},
		// Plain $unwind drops trips whose bus reference resolved to
		// nothing, giving inner-join semantics.
		bson.D{{Key: "$unwind", Value: "$busDetails"}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "departureAt", Value: 1}}}},
	)
	return pipeline
}

// buildSuggestPipeline composes the autocomplete aggregation: prefix
// match, group-dedup on the target field, cap, project the bare value.
func buildSuggestPipeline(field repository.LocationField, prefix string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{string(field): prefixPattern(prefix)}}},
		{{Key: "$group", Value: bson.M{"_id": "$" + string(field)}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"_id": 0, "value": "$_id"}}},
	}
}

// Create persists a new trip and assigns its identifier.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	doc := tripToDoc(trip)
	res, err := r.trips.InsertOne(ctx, doc)
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		trip.ID = oid.Hex()
	}
	return nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc tripDoc
	if err := r.trips.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toDomain(), nil
}

// FindMany retrieves all trips matching the filter.
func (r *TripRepository) FindMany(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	cursor, err := r.trips.Find(ctx, buildTripFilter(filter))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var trips []*domain.Trip
	for cursor.Next(ctx) {
		var doc tripDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, mapErr(err)
		}
		trips = append(trips, doc.toDomain())
	}
	return trips, mapErr(cursor.Err())
}

// UpdateMany overwrites the update fields on every matching trip.
func (r *TripRepository) UpdateMany(ctx context.Context, filter repository.TripFilter, update repository.TripUpdate) (int64, error) {
	set := bson.M{}
	if update.Status != "" {
		set["status"] = string(update.Status)
	}
	res, err := r.trips.UpdateMany(ctx, buildTripFilter(filter), bson.M{"$set": set})
	if err != nil {
		return 0, mapErr(err)
	}
	return res.ModifiedCount, nil
}

// UpdateFields applies a partial field-level overwrite to one trip.
func (r *TripRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.trips.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// tripWithBusDoc is the availability aggregation's output row.
type tripWithBusDoc struct {
	tripDoc    `bson:",inline"`
	BusDetails busDoc `bson:"busDetails"`
}

// FindAvailable executes the availability aggregation.
func (r *TripRepository) FindAvailable(ctx context.Context, q repository.AvailabilityQuery) ([]*domain.TripWithBus, error) {
	cursor, err := r.trips.Aggregate(ctx, buildAvailabilityPipeline(q))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var results []*domain.TripWithBus
	for cursor.Next(ctx) {
		var row tripWithBusDoc
		if err := cursor.Decode(&row); err != nil {
			return nil, mapErr(err)
		}
		results = append(results, &domain.TripWithBus{
			Trip: *row.tripDoc.toDomain(),
			Bus:  *row.BusDetails.toDomain(),
		})
	}
	return results, mapErr(cursor.Err())
}

// SuggestLocations returns up to limit distinct field values starting
// with prefix.
func (r *TripRepository) SuggestLocations(ctx context.Context, field repository.LocationField, prefix string, limit int) ([]string, error) {
	cursor, err := r.trips.Aggregate(ctx, buildSuggestPipeline(field, prefix, limit))
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(ctx)

	var values []string
	for cursor.Next(ctx) {
		var row struct {
			Value string `bson:"value"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, mapErr(err)
		}
		values = append(values, row.Value)
	}
	return values, mapErr(cursor.Err())
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
