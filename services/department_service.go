package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resourcehub/database"
	"resourcehub/models"
	"resourcehub/utils"
)

type DepartmentService struct {
	departmentCollection *mongo.Collection
	folderCollection     *mongo.Collection
	resourceCollection   *mongo.Collection
}

func NewDepartmentService() *DepartmentService {
	return &DepartmentService{
		departmentCollection: database.GetCollection(database.DepartmentsCollection),
		folderCollection:     database.GetCollection(database.FoldersCollection),
		resourceCollection:   database.GetCollection(database.ResourcesCollection),
	}
}

// GetDepartments returns paginated active departments. Reads are pure:
// stored counters are returned as-is, refreshed by the lifecycle managers
// after mutations.
func (ds *DepartmentService) GetDepartments(page, limit int, search string) ([]models.Department, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"is_active": true}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	skip := (page - 1) * limit
	cursor, err := ds.departmentCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"name": 1}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var departments []models.Department
	if err = cursor.All(ctx, &departments); err != nil {
		return nil, 0, err
	}

	total, err := ds.departmentCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return departments, int(total), nil
}

// GetDepartment returns an active department by id.
func (ds *DepartmentService) GetDepartment(deptID primitive.ObjectID) (*models.Department, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var dept models.Department
	err := ds.departmentCollection.FindOne(ctx, bson.M{"_id": deptID, "is_active": true}).Decode(&dept)
	if err != nil {
		return nil, utils.NewNotFoundError("department")
	}

	return &dept, nil
}

// GetDepartmentBySlug returns an active department by slug.
func (ds *DepartmentService) GetDepartmentBySlug(slug string) (*models.Department, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var dept models.Department
	err := ds.departmentCollection.FindOne(ctx, bson.M{"slug": slug, "is_active": true}).Decode(&dept)
	if err != nil {
		return nil, utils.NewNotFoundError("department")
	}

	return &dept, nil
}

// CreateDepartment creates a department with a slug derived from its name.
func (ds *DepartmentService) CreateDepartment(req *models.DepartmentRequest) (*models.Department, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slug := utils.Slugify(req.Name)
	if slug == "" {
		return nil, utils.NewValidationError("invalid department name", "name must contain at least one alphanumeric character")
	}

	count, err := ds.departmentCollection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{{"name": req.Name}, {"slug": slug}},
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewConflictError(fmt.Sprintf("department %q already exists", req.Name), int(count))
	}

	dept := &models.Department{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := ds.departmentCollection.InsertOne(ctx, dept); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError(fmt.Sprintf("department %q already exists", req.Name), 1)
		}
		return nil, err
	}

	return dept, nil
}

// UpdateDepartment renames or redescribes a department; renames re-derive
// the slug.
func (ds *DepartmentService) UpdateDepartment(deptID primitive.ObjectID, req *models.DepartmentRequest) (*models.Department, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"description": req.Description,
		"updated_at":  time.Now(),
	}

	if req.Name != "" {
		slug := utils.Slugify(req.Name)
		count, err := ds.departmentCollection.CountDocuments(ctx, bson.M{
			"_id": bson.M{"$ne": deptID},
			"$or": []bson.M{{"name": req.Name}, {"slug": slug}},
		})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, utils.NewConflictError(fmt.Sprintf("department %q already exists", req.Name), int(count))
		}
		update["name"] = req.Name
		update["slug"] = slug
	}

	var dept models.Department
	err := ds.departmentCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": deptID, "is_active": true},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&dept)
	if err != nil {
		return nil, utils.NewNotFoundError("department")
	}

	return &dept, nil
}

// DeleteDepartment soft-deletes a department. Deletion is rejected while
// any resource, active or not, still references it; this is stricter than
// the folder rule, which counts active resources only.
func (ds *DepartmentService) DeleteDepartment(deptID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	blocking, err := ds.resourceCollection.CountDocuments(ctx, departmentResourcesFilter(deptID))
	if err != nil {
		return err
	}
	if blocking > 0 {
		return utils.NewConflictError(
			fmt.Sprintf("cannot delete department: %d resources still reference it", blocking),
			int(blocking),
		)
	}

	result, err := ds.departmentCollection.UpdateOne(ctx,
		bson.M{"_id": deptID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("department")
	}

	return nil
}

// RefreshResourceCount recomputes and persists a department's active
// resource count. Called by the resource and folder lifecycle managers
// after mutations; reads never trigger it.
func (ds *DepartmentService) RefreshResourceCount(deptID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ds.resourceCollection.CountDocuments(ctx, activeDepartmentResourcesFilter(deptID))
	if err != nil {
		return err
	}

	_, err = ds.departmentCollection.UpdateOne(ctx,
		bson.M{"_id": deptID},
		bson.M{"$set": bson.M{"resource_count": int(count), "updated_at": time.Now()}},
	)
	return err
}

// refreshResourceCountLogged is the best-effort form used after mutations
// where a stale counter must not fail the primary operation.
func (ds *DepartmentService) refreshResourceCountLogged(deptID primitive.ObjectID) {
	if err := ds.RefreshResourceCount(deptID); err != nil {
		logrus.WithError(err).WithField("department_id", deptID.Hex()).
			Warn("failed to refresh department resource count")
	}
}

// AdjustFolderCount applies an incremental folder counter change at folder
// create/delete time.
func (ds *DepartmentService) AdjustFolderCount(deptID primitive.ObjectID, delta int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ds.departmentCollection.UpdateOne(ctx,
		bson.M{"_id": deptID},
		bson.M{"$inc": bson.M{"folder_count": delta}, "$set": bson.M{"updated_at": time.Now()}},
	)
	return err
}

// departmentResourcesFilter matches every resource referencing a
// department, active or not. Deletion is blocked on this filter: an
// inactive resource still pins its department.
func departmentResourcesFilter(deptID primitive.ObjectID) bson.M {
	return bson.M{"department_id": deptID}
}

// activeDepartmentResourcesFilter is the refresh scope: only active
// resources count toward resource_count.
func activeDepartmentResourcesFilter(deptID primitive.ObjectID) bson.M {
	return bson.M{"department_id": deptID, "is_active": true}
}
