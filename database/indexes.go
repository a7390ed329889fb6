package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func userIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

func departmentIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

// folderIndexModels declares (department_id, name) uniqueness as a partial
// index over active folders only, so a soft-deleted folder never blocks
// recreating one with the same name.
func folderIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "department_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_active": true}),
		},
		{
			Keys: bson.D{{Key: "department_id", Value: 1}, {Key: "position", Value: 1}},
		},
	}
}

func resourceIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "department_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "folder_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "uploaded_by", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "views", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}

func fileIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "resource_type", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}

// EnsureIndexes creates the indexes the lifecycle invariants depend on.
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	perCollection := map[string][]mongo.IndexModel{
		UsersCollection:       userIndexModels(),
		DepartmentsCollection: departmentIndexModels(),
		FoldersCollection:     folderIndexModels(),
		ResourcesCollection:   resourceIndexModels(),
		FilesCollection:       fileIndexModels(),
	}

	for name, indexes := range perCollection {
		if _, err := GetCollection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}

	return nil
}
