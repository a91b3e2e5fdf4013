package repository

import (
	"context"
	"fmt"
	"time"

	"roomdesk/internal/schedule"

	bookingerrors "roomdesk/internal/booking/errors"
	"roomdesk/pkg/config"
	mongotx "roomdesk/pkg/db/mongo"
	"roomdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "bookings"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

// BookingRepository is the durable store for confirmed bookings. Pending
// candidates never reach it; they live in the negotiation slot only.
type BookingRepository interface {
	Insert(ctx context.Context, booking *model.Booking) error
	IsAvailable(ctx context.Context, roomName string, window schedule.Window) (bool, error)
	FindExact(ctx context.Context, roomName string, window schedule.Window) (*model.Booking, error)
	DeleteExact(ctx context.Context, roomName string, window schedule.Window) (int64, error)
	FindAllConfirmed(ctx context.Context) ([]*model.Booking, error)
	EnsureIndexes(ctx context.Context) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel, as wrapping a SessionContext breaks
// transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

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

// EnsureIndexes installs the uniqueness constraint that makes the
// availability re-check-then-insert race-safe across processes: at most one
// confirmed booking may hold a given (room, start, end) slot.
func (r *mongoBookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room.room_name", Value: 1},
				{Key: "start", Value: 1},
				{Key: "end", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": model.StatusConfirmed}),
		},
		{
			Keys: bson.D{
				{Key: "room.room_name", Value: 1},
				{Key: "start", Value: 1},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingerrors.ErrDuplicateSlot
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) IsAvailable(ctx context.Context, roomName string, window schedule.Window) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Half-open overlap, plus the exact-slot clause for degenerate stored
	// windows that the strict test would miss.
	filter := bson.M{
		"room.room_name": roomName,
		"status":         model.StatusConfirmed,
		"$or": []bson.M{
			{
				"start": bson.M{"$lt": window.End},
				"end":   bson.M{"$gt": window.Start},
			},
			{
				"start": window.Start,
				"end":   window.End,
			},
		},
	}

	err := r.collection.FindOne(ctx, filter).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return true, nil
		}
		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	return false, nil
}

func (r *mongoBookingRepository) FindExact(ctx context.Context, roomName string, window schedule.Window) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"room.room_name": roomName,
		"status":         model.StatusConfirmed,
		"start":          window.Start,
		"end":            window.End,
	}

	var booking model.Booking
	if err := r.collection.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) DeleteExact(ctx context.Context, roomName string, window schedule.Window) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"room.room_name": roomName,
		"status":         model.StatusConfirmed,
		"start":          window.Start,
		"end":            window.End,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking: %w", err)
	}

	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) FindAllConfirmed(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "room.room_name", Value: 1}, {Key: "start", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"status": model.StatusConfirmed}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
