package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Rakib1514/tickto-server/internal/repository"
)

// Collection names within the tickto database.
const (
	tripsCollection    = "trips"
	busesCollection    = "buses"
	usersCollection    = "users"
	eventsCollection   = "events"
	paymentsCollection = "payments"
)

// parseObjectID coerces an external string identifier into the store's
// reference type. This is the single place reference coercion happens.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", repository.ErrInvalidReference, id)
	}
	return oid, nil
}

// mapErr translates driver-level failures into the repository taxonomy.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err):
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	default:
		return err
	}
}
