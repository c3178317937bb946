package repository

import (
	"context"
	"errors"

	"github.com/arcians/profile-registry/internal/models"
	appErr "github.com/arcians/profile-registry/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ProfilesCollection is the collection (and table) holding profiles.
const ProfilesCollection = "profiles"

// Documents are matched on the "id" field; Mongo's own _id is never exposed.
var withoutObjectID = bson.D{{Key: "_id", Value: 0}}

type mongoProfileRepository struct {
	coll *mongo.Collection
}

// NewMongoProfileRepository stores profiles as documents in coll.
func NewMongoProfileRepository(coll *mongo.Collection) ProfileRepository {
	return &mongoProfileRepository{coll: coll}
}

func (r *mongoProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create profile failed")
	}
	return nil
}

func (r *mongoProfileRepository) GetByID(ctx context.Context, id string, dest *models.Profile) error {
	opts := options.FindOne().SetProjection(withoutObjectID)
	err := r.coll.FindOne(ctx, bson.D{{Key: "id", Value: id}}, opts).Decode(dest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErr.New(appErr.CodeNotFound, "profile not found").WithMeta("id", id)
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get profile failed")
	}
	return nil
}

// List returns up to limit documents in natural order.
func (r *mongoProfileRepository) List(ctx context.Context, limit int) ([]models.Profile, error) {
	opts := options.Find().SetProjection(withoutObjectID)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list profiles failed")
	}
	out := make([]models.Profile, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "decode profiles failed")
	}
	return out, nil
}

func (r *mongoProfileRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "mongo ping failed")
	}
	return nil
}

// EnsureProfileIndexes creates the unique index on the lookup key.
func EnsureProfileIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("profiles_id_unique"),
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create profile indexes failed")
	}
	return nil
}
