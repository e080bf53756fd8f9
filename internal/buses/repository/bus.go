package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	buserrors "github.com/reshmacodewarrior/BusBookingSystem/internal/buses/errors"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/config"
	"github.com/reshmacodewarrior/BusBookingSystem/pkg/model"
)

const (
	CollectionName = "buses"
)

type mongoBusRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type BusRepository interface {
	Create(ctx context.Context, bus *model.Bus) error
	FindByID(ctx context.Context, id string) (*model.Bus, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Bus, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, bus *model.Bus) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, source, destination string, dayStart, dayEnd time.Time) ([]*model.Bus, error)
	BookSeats(ctx context.Context, id string, seatNumbers []string, booking *model.BookingRequest) error
}

func NewMongoBusRepository(cfg *config.Config) BusRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBusRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds the operation with the configured timeout while honoring
// a tighter deadline already present on the context.
func (r *mongoBusRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBusRepository) Create(ctx context.Context, bus *model.Bus) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	bus.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, bus)
	if err != nil {
		return fmt.Errorf("failed to create bus: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		bus.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBusRepository) FindByID(ctx context.Context, id string) (*model.Bus, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", buserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var bus model.Bus
	err = r.collection.FindOne(ctx, filter).Decode(&bus)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, buserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bus: %w", err)
	}

	return &bus, nil
}

func (r *mongoBusRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Bus, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "departure_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find buses: %w", err)
	}
	defer cursor.Close(ctx)

	var buses []*model.Bus
	if err = cursor.All(ctx, &buses); err != nil {
		return nil, fmt.Errorf("failed to decode buses: %w", err)
	}

	return buses, nil
}

func (r *mongoBusRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count buses: %w", err)
	}

	return count, nil
}

// Update replaces the mutable route attributes. Seat layout, counters,
// bus_number and total_seats never change through this path.
func (r *mongoBusRepository) Update(ctx context.Context, id string, bus *model.Bus) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", buserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"bus_name":       bus.BusName,
			"bus_type":       bus.BusType,
			"source":         bus.Source,
			"destination":    bus.Destination,
			"departure_time": bus.DepartureTime,
			"arrival_time":   bus.ArrivalTime,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update bus: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, buserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoBusRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", buserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete bus: %w", err)
	}

	if result.DeletedCount == 0 {
		return buserrors.ErrNotFound
	}

	return nil
}

// Search matches source and destination exactly (case-sensitive) and keeps
// buses departing within [dayStart, dayEnd).
func (r *mongoBusRepository) Search(ctx context.Context, source, destination string, dayStart, dayEnd time.Time) ([]*model.Bus, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"source":      source,
		"destination": destination,
		"departure_time": bson.M{
			"$gte": dayStart,
			"$lt":  dayEnd,
		},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "departure_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search buses: %w", err)
	}
	defer cursor.Close(ctx)

	var buses []*model.Bus
	if err = cursor.All(ctx, &buses); err != nil {
		return nil, fmt.Errorf("failed to decode buses: %w", err)
	}

	return buses, nil
}

// BookSeats flips the requested seats to booked, attaches the passenger
// fields and adjusts both counters in one UpdateOne with array filters, so
// the whole booking lands in a single document write.
func (r *mongoBusRepository) BookSeats(ctx context.Context, id string, seatNumbers []string, booking *model.BookingRequest) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", buserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"seats.$[seat].status":          model.SeatStatusBooked,
			"seats.$[seat].passenger_name":  booking.PassengerName,
			"seats.$[seat].passenger_email": booking.PassengerEmail,
			"seats.$[seat].passenger_phone": booking.PassengerPhone,
		},
		"$inc": bson.M{
			"available_seats": -len(seatNumbers),
			"booked_seats":    len(seatNumbers),
		},
	}

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"seat.seat_number": bson.M{"$in": seatNumbers}},
		},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to book seats: %w", err)
	}

	if result.MatchedCount == 0 {
		return buserrors.ErrNotFound
	}

	return nil
}
