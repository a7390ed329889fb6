package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resourcehub/database"
	"resourcehub/models"
	"resourcehub/utils"
)

type FolderService struct {
	folderCollection     *mongo.Collection
	resourceCollection   *mongo.Collection
	departmentCollection *mongo.Collection
	departmentService    *DepartmentService
}

func NewFolderService() *FolderService {
	return &FolderService{
		folderCollection:     database.GetCollection(database.FoldersCollection),
		resourceCollection:   database.GetCollection(database.ResourcesCollection),
		departmentCollection: database.GetCollection(database.DepartmentsCollection),
		departmentService:    NewDepartmentService(),
	}
}

// GetFolders returns paginated active folders, optionally scoped to a
// department, ordered by position then name.
func (fs *FolderService) GetFolders(departmentID string, page, limit int) ([]models.Folder, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"is_active": true}
	if departmentID != "" {
		deptID, err := utils.StringToObjectID(departmentID)
		if err != nil {
			return nil, 0, utils.NewValidationError("invalid department id")
		}
		filter["department_id"] = deptID
	}

	skip := (page - 1) * limit
	cursor, err := fs.folderCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "position", Value: 1}, {Key: "name", Value: 1}}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, 0, err
	}

	total, err := fs.folderCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return folders, int(total), nil
}

// GetFolder returns an active folder by id.
func (fs *FolderService) GetFolder(folderID primitive.ObjectID) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var folder models.Folder
	err := fs.folderCollection.FindOne(ctx, bson.M{"_id": folderID, "is_active": true}).Decode(&folder)
	if err != nil {
		return nil, utils.NewNotFoundError("folder")
	}

	return &folder, nil
}

// CreateFolder creates a folder inside a department. (name, department)
// must be unique among active folders; a soft-deleted folder with the same
// name does not block recreation. Increments the department folder counter.
func (fs *FolderService) CreateFolder(creatorID primitive.ObjectID, req *models.FolderCreateRequest) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deptID, err := utils.StringToObjectID(req.DepartmentID)
	if err != nil {
		return nil, utils.NewValidationError("invalid department id")
	}

	deptCount, err := fs.departmentCollection.CountDocuments(ctx, bson.M{"_id": deptID, "is_active": true})
	if err != nil {
		return nil, err
	}
	if deptCount == 0 {
		return nil, utils.NewNotFoundError("department")
	}

	existing, err := fs.folderCollection.CountDocuments(ctx, activeFolderNameFilter(deptID, req.Name, nil))
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, utils.NewConflictError(
			fmt.Sprintf("folder %q already exists in this department", req.Name), int(existing))
	}

	folder := &models.Folder{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Slug:         utils.Slugify(req.Name),
		Description:  req.Description,
		DepartmentID: deptID,
		CreatedBy:    &creatorID,
		Position:     req.Position,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := fs.folderCollection.InsertOne(ctx, folder); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.NewConflictError(
				fmt.Sprintf("folder %q already exists in this department", req.Name), 1)
		}
		return nil, err
	}

	if err := fs.departmentService.AdjustFolderCount(deptID, 1); err != nil {
		return nil, err
	}

	return folder, nil
}

// UpdateFolder edits folder metadata. Renames re-derive the slug and
// re-check active-folder uniqueness.
func (fs *FolderService) UpdateFolder(folderID primitive.ObjectID, req *models.FolderUpdateRequest) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	folder, err := fs.GetFolder(folderID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Position != nil {
		update["position"] = *req.Position
	}

	if req.Name != "" && req.Name != folder.Name {
		existing, err := fs.folderCollection.CountDocuments(ctx,
			activeFolderNameFilter(folder.DepartmentID, req.Name, &folderID))
		if err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, utils.NewConflictError(
				fmt.Sprintf("folder %q already exists in this department", req.Name), int(existing))
		}
		update["name"] = req.Name
		update["slug"] = utils.Slugify(req.Name)
	}

	var updated models.Folder
	err = fs.folderCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": folderID, "is_active": true},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, utils.NewNotFoundError("folder")
	}

	return &updated, nil
}

// DeleteFolder soft-deletes a folder. A folder holding active resources is
// only deletable with a reassignment target: all active resources move to
// the target folder (same or different department) and the target's
// counter grows by the moved count. Without a target the deletion is
// rejected with the blocking count.
func (fs *FolderService) DeleteFolder(folderID primitive.ObjectID, reassignTo *primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	folder, err := fs.GetFolder(folderID)
	if err != nil {
		return err
	}

	attached, err := fs.resourceCollection.CountDocuments(ctx, activeFolderResourcesFilter(folderID))
	if err != nil {
		return err
	}

	var target *models.Folder
	if attached > 0 {
		if reassignTo == nil {
			return utils.NewConflictError(
				fmt.Sprintf("folder contains %d active resources; supply a reassignment target", attached),
				int(attached),
			)
		}
		if *reassignTo == folderID {
			return utils.NewValidationError("reassignment target must be a different folder")
		}
		target, err = fs.GetFolder(*reassignTo)
		if err != nil {
			return utils.NewNotFoundError("reassignment target folder")
		}
	}

	if target != nil {
		result, err := fs.resourceCollection.UpdateMany(ctx,
			activeFolderResourcesFilter(folderID),
			reassignResourcesUpdate(target),
		)
		if err != nil {
			return err
		}

		if err := fs.AdjustResourceCount(target.ID, int(result.ModifiedCount)); err != nil {
			return err
		}
	}

	result, err := fs.folderCollection.UpdateOne(ctx,
		bson.M{"_id": folderID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "resource_count": 0, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("folder")
	}

	if err := fs.departmentService.AdjustFolderCount(folder.DepartmentID, -1); err != nil {
		return err
	}

	fs.departmentService.refreshResourceCountLogged(folder.DepartmentID)
	if target != nil && target.DepartmentID != folder.DepartmentID {
		fs.departmentService.refreshResourceCountLogged(target.DepartmentID)
	}

	return nil
}

// AdjustResourceCount applies an incremental counter change on a folder.
func (fs *FolderService) AdjustResourceCount(folderID primitive.ObjectID, delta int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := fs.folderCollection.UpdateOne(ctx, bson.M{"_id": folderID}, folderCountAdjustment(delta))
	return err
}

// activeFolderNameFilter matches active folders with the given name in a
// department. Soft-deleted folders never match, so a deleted name is free
// for recreation. exclude skips the folder being renamed.
func activeFolderNameFilter(deptID primitive.ObjectID, name string, exclude *primitive.ObjectID) bson.M {
	filter := bson.M{
		"department_id": deptID,
		"name":          name,
		"is_active":     true,
	}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}
	return filter
}

// activeFolderResourcesFilter matches the active resources attached to a
// folder; both the blocking count and the reassignment sweep use it, so
// they always agree on which resources move.
func activeFolderResourcesFilter(folderID primitive.ObjectID) bson.M {
	return bson.M{"folder_id": folderID, "is_active": true}
}

// reassignResourcesUpdate moves resources into the target folder and the
// target's department in one write, keeping folder→department containment.
func reassignResourcesUpdate(target *models.Folder) bson.M {
	return bson.M{"$set": bson.M{
		"folder_id":     target.ID,
		"department_id": target.DepartmentID,
		"updated_at":    time.Now(),
	}}
}

// folderCountAdjustment increments a folder's resource counter by delta.
func folderCountAdjustment(delta int) bson.M {
	return bson.M{
		"$inc": bson.M{"resource_count": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
}
