package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-nav/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MissionRepo handles the persistence of missions.
type MissionRepo struct {
	collection *mongo.Collection
}

// NewMissionRepo creates a new MissionRepo with the given MongoDB client, database name, and collection name.
func NewMissionRepo(client *mongo.Client, dbName, collectionName string) *MissionRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MissionRepo{
		collection: collection,
	}
}

// Save inserts or updates a mission in the repository.
func (r *MissionRepo) Save(mission *domain.Mission) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": mission.ID}
	update := bson.M{
		"$set": bson.M{
			"mode":      mission.Mode,
			"status":    mission.Status,
			"grid":      mission.Grid,
			"start":     mission.Start,
			"goal":      mission.Goal,
			"from":      mission.From,
			"to":        mission.To,
			"path":      mission.Path,
			"commands":  mission.Commands,
			"executed":  mission.Executed,
			"error":     mission.Error,
			"updatedAt": mission.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"createdAt": mission.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a mission by its ID.
// Returns domain.ErrNotFound if there is no such mission.
func (r *MissionRepo) ByID(id uuid.UUID) (*domain.Mission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var mission domain.Mission
	if err := r.collection.FindOne(ctx, filter).Decode(&mission); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &mission, nil
}
