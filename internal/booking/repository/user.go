package repository

import (
	"context"
	"fmt"

	bookingerrors "roomdesk/internal/booking/errors"
	"roomdesk/pkg/config"
	"roomdesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	UsersCollectionName = "users"
)

// UserRepository covers the single point the booking core needs from the
// user store: resolving a presented credential to a role.
type UserRepository interface {
	RoleByAPIKey(ctx context.Context, apiKey string) (model.Role, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(UsersCollectionName),
	}
}

func (r *mongoUserRepository) RoleByAPIKey(ctx context.Context, apiKey string) (model.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"api_key": apiKey}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", bookingerrors.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Role.Valid() {
		return "", bookingerrors.ErrUserNotFound
	}

	return user.Role, nil
}
