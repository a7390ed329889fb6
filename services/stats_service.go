package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resourcehub/database"
	"resourcehub/models"
)

// TopN is the listing size for popular and recent resources.
const TopN = 5

// StatsSummary is the derived read-only view for one scope. Popular and
// recent are sorted and limited independently of each other.
type StatsSummary struct {
	TotalResources int               `json:"total_resources"`
	FileResources  int               `json:"file_resources"`
	LinkResources  int               `json:"link_resources"`
	TotalViews     int64             `json:"total_views"`
	TotalDownloads int64             `json:"total_downloads"`
	TotalSize      int64             `json:"total_size"`
	Popular        []models.Resource `json:"popular"`
	Recent         []models.Resource `json:"recent"`
}

// StatsService computes aggregates straight from the resource collection.
// It never mutates; denormalized counters elsewhere are maintained by the
// lifecycle managers, not here.
type StatsService struct {
	resourceCollection *mongo.Collection
}

func NewStatsService() *StatsService {
	return &StatsService{
		resourceCollection: database.GetCollection(database.ResourcesCollection),
	}
}

// GetGlobalStats aggregates across all active resources.
func (ss *StatsService) GetGlobalStats() (*StatsSummary, error) {
	return ss.aggregate(bson.M{"is_active": true})
}

// GetUserStats aggregates the resources a user uploaded.
func (ss *StatsService) GetUserStats(userID primitive.ObjectID) (*StatsSummary, error) {
	return ss.aggregate(bson.M{"is_active": true, "uploaded_by": userID})
}

// GetDepartmentStats aggregates one department's resources.
func (ss *StatsService) GetDepartmentStats(deptID primitive.ObjectID) (*StatsSummary, error) {
	return ss.aggregate(bson.M{"is_active": true, "department_id": deptID})
}

// GetFolderStats aggregates one folder's resources.
func (ss *StatsService) GetFolderStats(folderID primitive.ObjectID) (*StatsSummary, error) {
	return ss.aggregate(bson.M{"is_active": true, "folder_id": folderID})
}

func (ss *StatsService) aggregate(match bson.M) (*StatsSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"files": bson.M{"$sum": bson.M{
				"$cond": []interface{}{bson.M{"$eq": []string{"$type", models.ResourceTypeFile}}, 1, 0},
			}},
			"links": bson.M{"$sum": bson.M{
				"$cond": []interface{}{bson.M{"$eq": []string{"$type", models.ResourceTypeLink}}, 1, 0},
			}},
			"views":     bson.M{"$sum": "$views"},
			"downloads": bson.M{"$sum": "$downloads"},
			"size":      bson.M{"$sum": "$file_size"},
		}},
	}

	cursor, err := ss.resourceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total     int   `bson:"total"`
		Files     int   `bson:"files"`
		Links     int   `bson:"links"`
		Views     int64 `bson:"views"`
		Downloads int64 `bson:"downloads"`
		Size      int64 `bson:"size"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	summary := &StatsSummary{
		Popular: []models.Resource{},
		Recent:  []models.Resource{},
	}
	if len(rows) > 0 {
		summary.TotalResources = rows[0].Total
		summary.FileResources = rows[0].Files
		summary.LinkResources = rows[0].Links
		summary.TotalViews = rows[0].Views
		summary.TotalDownloads = rows[0].Downloads
		summary.TotalSize = rows[0].Size
	}

	popular, err := ss.topResources(ctx, match, bson.D{{Key: "views", Value: -1}})
	if err != nil {
		return nil, err
	}
	summary.Popular = popular

	recent, err := ss.topResources(ctx, match, bson.D{{Key: "created_at", Value: -1}})
	if err != nil {
		return nil, err
	}
	summary.Recent = recent

	return summary, nil
}

func (ss *StatsService) topResources(ctx context.Context, match bson.M, sort bson.D) ([]models.Resource, error) {
	cursor, err := ss.resourceCollection.Find(ctx, match,
		options.Find().SetSort(sort).SetLimit(TopN),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	resources := []models.Resource{}
	if err = cursor.All(ctx, &resources); err != nil {
		return nil, err
	}

	return resources, nil
}
