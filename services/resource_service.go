package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"resourcehub/database"
	"resourcehub/models"
	"resourcehub/storage"
	"resourcehub/utils"
)

// MaxAttachBatch bounds a single attach request.
const MaxAttachBatch = 10

type ResourceService struct {
	resourceCollection   *mongo.Collection
	departmentCollection *mongo.Collection
	folderCollection     *mongo.Collection
	userCollection       *mongo.Collection
	departmentService    *DepartmentService
}

// UploadPayload is one binary payload handed to the lifecycle manager by
// the transport layer.
type UploadPayload struct {
	Filename string
	Data     []byte
}

type ResourceFilters struct {
	Search       string
	Type         string
	Tag          string
	DepartmentID string
	FolderID     string
	UploaderID   string
	SortBy       string
	SortOrder    string
}

func NewResourceService() *ResourceService {
	return &ResourceService{
		resourceCollection:   database.GetCollection(database.ResourcesCollection),
		departmentCollection: database.GetCollection(database.DepartmentsCollection),
		folderCollection:     database.GetCollection(database.FoldersCollection),
		userCollection:       database.GetCollection(database.UsersCollection),
		departmentService:    NewDepartmentService(),
	}
}

// GetResources returns paginated active resources with filters. Listing
// never increments view counters.
func (rs *ResourceService) GetResources(page, limit int, filters *ResourceFilters) ([]models.Resource, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := buildResourceFilter(filters)

	sortField := "created_at"
	if filters.SortBy != "" {
		sortField = filters.SortBy
	}
	sortOrder := -1
	if filters.SortOrder == "asc" {
		sortOrder = 1
	}

	skip := (page - 1) * limit
	cursor, err := rs.resourceCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{sortField: sortOrder}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err = cursor.All(ctx, &resources); err != nil {
		return nil, 0, err
	}

	total, err := rs.resourceCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return resources, int(total), nil
}

// buildResourceFilter composes the listing filter. Every listing is scoped
// to active resources; soft-deleted ones never appear in default reads.
func buildResourceFilter(filters *ResourceFilters) bson.M {
	filter := bson.M{"is_active": true}

	if filters.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": filters.Search, "$options": "i"}},
			{"description": bson.M{"$regex": filters.Search, "$options": "i"}},
			{"tags": bson.M{"$in": []string{filters.Search}}},
		}
	}
	if filters.Type != "" {
		filter["type"] = filters.Type
	}
	if filters.Tag != "" {
		filter["tags"] = filters.Tag
	}
	if filters.DepartmentID != "" && utils.IsValidObjectID(filters.DepartmentID) {
		deptID, _ := utils.StringToObjectID(filters.DepartmentID)
		filter["department_id"] = deptID
	}
	if filters.FolderID != "" && utils.IsValidObjectID(filters.FolderID) {
		folderID, _ := utils.StringToObjectID(filters.FolderID)
		filter["folder_id"] = folderID
	}
	if filters.UploaderID != "" && utils.IsValidObjectID(filters.UploaderID) {
		uploaderID, _ := utils.StringToObjectID(filters.UploaderID)
		filter["uploaded_by"] = uploaderID
	}

	return filter
}

// GetResource fetches a single active resource and atomically increments
// its view counter as a side effect of the read.
func (rs *ResourceService) GetResource(resourceID primitive.ObjectID) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resource models.Resource
	err := rs.resourceCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": resourceID, "is_active": true},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&resource)
	if err != nil {
		return nil, utils.NewNotFoundError("resource")
	}

	if resource.UploadedBy != nil {
		if _, err := rs.userCollection.UpdateOne(ctx,
			bson.M{"_id": *resource.UploadedBy},
			bson.M{"$inc": bson.M{"total_views": 1}},
		); err != nil {
			logrus.WithError(err).Warn("failed to increment uploader view counter")
		}
	}

	return &resource, nil
}

// PeekResource fetches without the view side effect. Used internally and by
// mutation paths.
func (rs *ResourceService) PeekResource(resourceID primitive.ObjectID) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resource models.Resource
	err := rs.resourceCollection.FindOne(ctx, bson.M{"_id": resourceID, "is_active": true}).Decode(&resource)
	if err != nil {
		return nil, utils.NewNotFoundError("resource")
	}

	return &resource, nil
}

// CreateResource validates input, stores the binary payload when type=file,
// and persists the record. Department and folder counters are not
// incremented here; the department's explicit refresh runs post-insert.
func (rs *ResourceService) CreateResource(uploaderID primitive.ObjectID, req *models.ResourceCreateRequest, payload *UploadPayload) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := validateCreateRequest(req, payload); err != nil {
		return nil, err
	}

	deptID, err := utils.StringToObjectID(req.DepartmentID)
	if err != nil {
		return nil, utils.NewValidationError("invalid department id")
	}

	deptCount, err := rs.departmentCollection.CountDocuments(ctx, bson.M{"_id": deptID, "is_active": true})
	if err != nil {
		return nil, err
	}
	if deptCount == 0 {
		return nil, utils.NewNotFoundError("department")
	}

	var folderID *primitive.ObjectID
	if req.FolderID != "" {
		fid, err := utils.StringToObjectID(req.FolderID)
		if err != nil {
			return nil, utils.NewValidationError("invalid folder id")
		}
		var folder models.Folder
		if err := rs.folderCollection.FindOne(ctx, bson.M{"_id": fid, "is_active": true}).Decode(&folder); err != nil {
			return nil, utils.NewNotFoundError("folder")
		}
		if folder.DepartmentID != deptID {
			return nil, utils.NewValidationError("folder does not belong to the given department")
		}
		folderID = &fid
	}

	resource := &models.Resource{
		ID:           primitive.NewObjectID(),
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		DepartmentID: deptID,
		FolderID:     folderID,
		UploadedBy:   &uploaderID,
		Tags:         utils.NormalizeTags(req.Tags),
		Contributors: utils.NormalizeContributors(req.Contributors),
		FavoritedBy:  []primitive.ObjectID{},
		Files:        []models.ResourceFile{},
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	switch req.Type {
	case models.ResourceTypeFile:
		stored, err := rs.uploadPayload(ctx, payload)
		if err != nil {
			return nil, err
		}
		resource.FileURL = stored.URL
		resource.PublicID = stored.PublicID
		resource.FileFormat = stored.Format
		resource.FileSize = stored.Size
	case models.ResourceTypeLink:
		resource.URL = req.URL
		resource.LinkType = req.LinkType
		if resource.LinkType == "" {
			resource.LinkType = models.LinkTypeOther
		}
	}

	if _, err := rs.resourceCollection.InsertOne(ctx, resource); err != nil {
		if resource.PublicID != "" {
			rs.deleteStoredObject(resource.PublicID)
		}
		return nil, err
	}

	if _, err := rs.userCollection.UpdateOne(ctx,
		bson.M{"_id": uploaderID},
		bson.M{"$inc": bson.M{"upload_count": 1}},
	); err != nil {
		logrus.WithError(err).Warn("failed to increment uploader upload counter")
	}

	rs.departmentService.refreshResourceCountLogged(deptID)

	return resource, nil
}

// UpdateResource edits metadata and optionally replaces the stored file.
// The resource type is immutable; a replacement payload on a link resource
// is rejected, and a type field in the request is ignored upstream.
func (rs *ResourceService) UpdateResource(resourceID primitive.ObjectID, req *models.ResourceUpdateRequest, payload *UploadPayload) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resource, err := rs.PeekResource(resourceID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Title != "" {
		update["title"] = req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Tags != nil {
		update["tags"] = utils.NormalizeTags(req.Tags)
	}
	if req.Contributors != nil {
		update["contributors"] = utils.NormalizeContributors(req.Contributors)
	}

	if req.FolderID != "" {
		fid, err := utils.StringToObjectID(req.FolderID)
		if err != nil {
			return nil, utils.NewValidationError("invalid folder id")
		}

		var folder models.Folder
		if err := rs.folderCollection.FindOne(ctx, bson.M{"_id": fid, "is_active": true}).Decode(&folder); err != nil {
			return nil, utils.NewNotFoundError("folder")
		}

		// The resource follows its folder's department, so a folder
		// change can never orphan it in the wrong department.
		for field, value := range folderMoveFields(&folder) {
			update[field] = value
		}
	}

	switch resource.Type {
	case models.ResourceTypeLink:
		if payload != nil {
			return nil, utils.NewValidationError("cannot attach a file payload to a link resource")
		}
		if req.URL != "" {
			if !utils.IsValidURL(req.URL) {
				return nil, utils.NewValidationError("invalid url", "url must be a valid http or https URL")
			}
			update["url"] = req.URL
		}
		if req.LinkType != "" {
			update["link_type"] = req.LinkType
		}
	case models.ResourceTypeFile:
		if payload != nil {
			stored, err := rs.uploadPayload(ctx, payload)
			if err != nil {
				return nil, err
			}
			update["file_url"] = stored.URL
			update["public_id"] = stored.PublicID
			update["file_format"] = stored.Format
			update["file_size"] = stored.Size

			// Superseded object removal is best-effort: the update
			// succeeds with the new file even when cleanup fails.
			if resource.PublicID != "" {
				rs.deleteStoredObject(resource.PublicID)
			}
		}
	}

	var updated models.Resource
	err = rs.resourceCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": resourceID, "is_active": true},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return nil, utils.NewNotFoundError("resource")
	}

	if updated.DepartmentID != resource.DepartmentID {
		rs.departmentService.refreshResourceCountLogged(resource.DepartmentID)
		rs.departmentService.refreshResourceCountLogged(updated.DepartmentID)
	}

	return &updated, nil
}

// folderMoveFields points a resource at a folder and that folder's
// department together; the two references are never updated separately.
func folderMoveFields(folder *models.Folder) bson.M {
	return bson.M{
		"folder_id":     folder.ID,
		"department_id": folder.DepartmentID,
	}
}

// favoritePullFilter matches only when the user is already in the set, so
// the paired $pull is a no-op against concurrent toggles.
func favoritePullFilter(resourceID, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": resourceID, "is_active": true, "favorited_by": userID}
}

// favoriteAddFilter matches only when the user is absent from the set;
// together with $addToSet this makes repeated adds idempotent.
func favoriteAddFilter(resourceID, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": resourceID, "is_active": true, "favorited_by": bson.M{"$ne": userID}}
}

// DeleteResource soft-deletes. Stored objects are intentionally retained;
// files stay retrievable by direct URL after deletion.
func (rs *ResourceService) DeleteResource(resourceID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resource, err := rs.PeekResource(resourceID)
	if err != nil {
		return err
	}

	result, err := rs.resourceCollection.UpdateOne(ctx,
		bson.M{"_id": resourceID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("resource")
	}

	rs.departmentService.refreshResourceCountLogged(resource.DepartmentID)

	return nil
}

// AttachFiles uploads 1..10 payloads concurrently and appends them to the
// resource's file list. The batch is all-or-nothing: one failed upload
// aborts the attach and already-stored objects are removed best-effort.
func (rs *ResourceService) AttachFiles(resourceID primitive.ObjectID, payloads []*UploadPayload) ([]models.ResourceFile, error) {
	if len(payloads) == 0 {
		return nil, utils.NewValidationError("at least one file is required")
	}
	if len(payloads) > MaxAttachBatch {
		return nil, utils.NewValidationError(fmt.Sprintf("at most %d files may be attached per request", MaxAttachBatch))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := rs.PeekResource(resourceID); err != nil {
		return nil, err
	}

	stored, err := rs.uploadAll(ctx, payloads)
	if err != nil {
		return nil, err
	}

	result, err := rs.resourceCollection.UpdateOne(ctx,
		bson.M{"_id": resourceID, "is_active": true},
		bson.M{
			"$push": bson.M{"files": bson.M{"$each": stored}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil || result.MatchedCount == 0 {
		for _, f := range stored {
			rs.deleteStoredObject(f.PublicID)
		}
		if err != nil {
			return nil, err
		}
		return nil, utils.NewNotFoundError("resource")
	}

	return stored, nil
}

// DetachFile removes one sub-file from the resource's file list. Detaching
// an unknown id reports NotFound rather than silently succeeding; the
// stored object is deleted only when a public id is present (external
// links have none).
func (rs *ResourceService) DetachFile(resourceID, fileID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resource, err := rs.PeekResource(resourceID)
	if err != nil {
		return err
	}

	var detached *models.ResourceFile
	for i := range resource.Files {
		if resource.Files[i].ID == fileID {
			detached = &resource.Files[i]
			break
		}
	}
	if detached == nil {
		return utils.NewNotFoundError("file")
	}

	result, err := rs.resourceCollection.UpdateOne(ctx,
		bson.M{"_id": resourceID, "is_active": true},
		bson.M{
			"$pull": bson.M{"files": bson.M{"_id": fileID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return utils.NewNotFoundError("file")
	}

	if detached.PublicID != "" {
		rs.deleteStoredObject(detached.PublicID)
	}

	return nil
}

// ToggleFavorite flips set membership for (resource, user) as atomic
// conditional updates, so concurrent toggles can never produce duplicate
// entries. Returns the resulting membership and cardinality.
func (rs *ResourceService) ToggleFavorite(resourceID, userID primitive.ObjectID) (*models.FavoriteResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Remove if present; the membership filter makes the pull a no-op
	// when another toggle got there first.
	removed, err := rs.resourceCollection.UpdateOne(ctx,
		favoritePullFilter(resourceID, userID),
		bson.M{"$pull": bson.M{"favorited_by": userID}},
	)
	if err != nil {
		return nil, err
	}

	if removed.MatchedCount == 0 {
		_, err := rs.resourceCollection.UpdateOne(ctx,
			favoriteAddFilter(resourceID, userID),
			bson.M{"$addToSet": bson.M{"favorited_by": userID}},
		)
		if err != nil {
			return nil, err
		}
		// A zero match here means the resource is gone or a concurrent
		// toggle already added the entry; the re-read below decides.
	}

	resource, err := rs.PeekResource(resourceID)
	if err != nil {
		return nil, err
	}

	return &models.FavoriteResponse{
		Favorited: resource.IsFavoritedBy(userID),
		Count:     len(resource.FavoritedBy),
	}, nil
}

// TrackDownload atomically increments the download counter and returns the
// refreshed resource. Counters are monotonic; there is no decrement path.
func (rs *ResourceService) TrackDownload(resourceID primitive.ObjectID) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var resource models.Resource
	err := rs.resourceCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": resourceID, "is_active": true},
		bson.M{"$inc": bson.M{"downloads": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&resource)
	if err != nil {
		return nil, utils.NewNotFoundError("resource")
	}

	if resource.UploadedBy != nil {
		if _, err := rs.userCollection.UpdateOne(ctx,
			bson.M{"_id": *resource.UploadedBy},
			bson.M{"$inc": bson.M{"total_downloads": 1}},
		); err != nil {
			logrus.WithError(err).Warn("failed to increment uploader download counter")
		}
	}

	return &resource, nil
}

// GetFavorites lists the caller's favorited active resources.
func (rs *ResourceService) GetFavorites(userID primitive.ObjectID, page, limit int) ([]models.Resource, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"is_active": true, "favorited_by": userID}

	skip := (page - 1) * limit
	cursor, err := rs.resourceCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err = cursor.All(ctx, &resources); err != nil {
		return nil, 0, err
	}

	total, err := rs.resourceCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return resources, int(total), nil
}

// uploadPayload stores one payload under a fresh key within the storage
// timeout and classifies failures.
func (rs *ResourceService) uploadPayload(ctx context.Context, payload *UploadPayload) (*models.ResourceFile, error) {
	return uploadOne(ctx, storageClient, payload)
}

// uploadAll stores every payload concurrently; any single failure fails
// the batch and removes the objects already stored.
func (rs *ResourceService) uploadAll(ctx context.Context, payloads []*UploadPayload) ([]models.ResourceFile, error) {
	return uploadBatch(ctx, storageClient, payloads)
}

// deleteStoredObject is the best-effort cleanup used for superseded and
// orphaned objects.
func (rs *ResourceService) deleteStoredObject(publicID string) {
	deleteStored(storageClient, publicID)
}

func uploadOne(ctx context.Context, client storage.Client, payload *UploadPayload) (*models.ResourceFile, error) {
	key := objectKey(payload.Filename)

	callCtx, cancel := storageContext(ctx)
	defer cancel()

	url, err := client.Upload(callCtx, key, payload.Data)
	if err != nil {
		return nil, classifyStorageError(err)
	}

	return &models.ResourceFile{
		ID:       primitive.NewObjectID(),
		URL:      url,
		PublicID: key,
		Format:   utils.FileFormat(payload.Filename),
		Size:     int64(len(payload.Data)),
	}, nil
}

func uploadBatch(ctx context.Context, client storage.Client, payloads []*UploadPayload) ([]models.ResourceFile, error) {
	stored := make([]models.ResourceFile, len(payloads))

	g, gctx := errgroup.WithContext(ctx)
	for i, payload := range payloads {
		i, payload := i, payload
		g.Go(func() error {
			f, err := uploadOne(gctx, client, payload)
			if err != nil {
				return err
			}
			stored[i] = *f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, f := range stored {
			if f.PublicID != "" {
				deleteStored(client, f.PublicID)
			}
		}
		return nil, err
	}

	return stored, nil
}

func deleteStored(client storage.Client, publicID string) {
	ctx, cancel := storageContext(context.Background())
	defer cancel()

	if err := client.Delete(ctx, publicID); err != nil {
		logrus.WithError(err).WithField("public_id", publicID).
			Warn("failed to delete stored object")
	}
}

func objectKey(filename string) string {
	key := uuid.NewString()
	if format := utils.FileFormat(filename); format != "" {
		key += "." + format
	}
	return "resources/" + key
}

func classifyStorageError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.NewTimeoutError("object storage")
	}
	return utils.NewExternalServiceError("object storage", err)
}

func validateCreateRequest(req *models.ResourceCreateRequest, payload *UploadPayload) error {
	var fields []string

	// Tag-declared constraints first, then the type-conditional ones the
	// tags cannot express.
	if err := utils.ValidateStruct(req); err != nil {
		var ve *utils.ValidationError
		if errors.As(err, &ve) {
			fields = ve.Fields
		}
	}

	switch req.Type {
	case models.ResourceTypeFile:
		if payload == nil || len(payload.Data) == 0 {
			fields = append(fields, "a file payload is required for type=file")
		}
	case models.ResourceTypeLink:
		if req.URL == "" {
			fields = append(fields, "url is required for type=link")
		} else if !utils.IsValidURL(req.URL) {
			fields = append(fields, "url must be a valid http or https URL")
		}
	}

	if len(fields) > 0 {
		return utils.NewValidationError("validation failed", fields...)
	}
	return nil
}
