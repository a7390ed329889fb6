package services

import (
	"context"
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

// FileService maintains the bulk-upload registry: standalone stored files
// and external links not attached to any resource.
type FileService struct {
	fileCollection *mongo.Collection
}

type FileFilters struct {
	Search       string
	ResourceType string
}

func NewFileService() *FileService {
	return &FileService{
		fileCollection: database.GetCollection(database.FilesCollection),
	}
}

// RegisterUploads stores a batch of payloads and records a registry entry
// per stored object. The upload batch is all-or-nothing like resource
// attachment.
func (fls *FileService) RegisterUploads(uploaderID primitive.ObjectID, payloads []*UploadPayload) ([]models.File, error) {
	if len(payloads) == 0 {
		return nil, utils.NewValidationError("at least one file is required")
	}
	if len(payloads) > MaxAttachBatch {
		return nil, utils.NewValidationError("too many files in one batch")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	stored, err := uploadBatch(ctx, storageClient, payloads)
	if err != nil {
		return nil, err
	}

	files := buildRegistryEntries(uploaderID, payloads, stored)
	docs := make([]interface{}, len(files))
	for i := range files {
		docs[i] = files[i]
	}

	if _, err := fls.fileCollection.InsertMany(ctx, docs); err != nil {
		// An ordered InsertMany can persist a prefix before failing;
		// sweep the whole batch of ids so no registry row survives
		// pointing at an object we are about to delete.
		if _, cleanupErr := fls.fileCollection.DeleteMany(ctx, registryBatchFilter(files)); cleanupErr != nil {
			logrus.WithError(cleanupErr).Warn("failed to clean up partial registry batch")
		}
		for _, s := range stored {
			deleteStored(storageClient, s.PublicID)
		}
		return nil, err
	}

	return files, nil
}

// buildRegistryEntries pairs each payload with its stored object and
// assigns ids up front, so a failed insert can still identify the batch.
func buildRegistryEntries(uploaderID primitive.ObjectID, payloads []*UploadPayload, stored []models.ResourceFile) []models.File {
	now := time.Now()
	files := make([]models.File, len(stored))
	for i, s := range stored {
		files[i] = models.File{
			ID:           primitive.NewObjectID(),
			Name:         payloads[i].Filename,
			URL:          s.URL,
			PublicID:     s.PublicID,
			Format:       s.Format,
			Size:         s.Size,
			Type:         models.ResourceTypeFile,
			ResourceType: utils.DetectResourceType(payloads[i].Filename),
			UploadedBy:   &uploaderID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return files
}

// registryBatchFilter matches every entry of a batch by id.
func registryBatchFilter(files []models.File) bson.M {
	ids := make([]primitive.ObjectID, len(files))
	for i := range files {
		ids[i] = files[i].ID
	}
	return bson.M{"_id": bson.M{"$in": ids}}
}

// RegisterLink records an external link in the registry. Links carry no
// public id, so deletion never touches object storage.
func (fls *FileService) RegisterLink(uploaderID primitive.ObjectID, name, url string) (*models.File, error) {
	if name == "" {
		return nil, utils.NewValidationError("name is required")
	}
	if !utils.IsValidURL(url) {
		return nil, utils.NewValidationError("invalid url", "url must be a valid http or https URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	file := &models.File{
		ID:           primitive.NewObjectID(),
		Name:         name,
		URL:          url,
		Type:         models.ResourceTypeLink,
		ResourceType: models.FileResourceLink,
		UploadedBy:   &uploaderID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := fls.fileCollection.InsertOne(ctx, file); err != nil {
		return nil, err
	}

	return file, nil
}

// GetFiles returns paginated registry entries with filters.
func (fls *FileService) GetFiles(page, limit int, filters *FileFilters) ([]models.File, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if filters.Search != "" {
		filter["name"] = bson.M{"$regex": filters.Search, "$options": "i"}
	}
	if filters.ResourceType != "" {
		filter["resource_type"] = filters.ResourceType
	}

	skip := (page - 1) * limit
	cursor, err := fls.fileCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var files []models.File
	if err = cursor.All(ctx, &files); err != nil {
		return nil, 0, err
	}

	total, err := fls.fileCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return files, int(total), nil
}

// GetFile returns a registry entry by id.
func (fls *FileService) GetFile(fileID primitive.ObjectID) (*models.File, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var file models.File
	err := fls.fileCollection.FindOne(ctx, bson.M{"_id": fileID}).Decode(&file)
	if err != nil {
		return nil, utils.NewNotFoundError("file")
	}

	return &file, nil
}

// DeleteFile removes a registry entry outright together with its stored
// object when one exists. This is the one true (hard) delete in the
// system besides resource sub-file detachment.
func (fls *FileService) DeleteFile(fileID primitive.ObjectID) error {
	file, err := fls.GetFile(fileID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := fls.fileCollection.DeleteOne(ctx, bson.M{"_id": fileID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("file")
	}

	if file.PublicID != "" {
		deleteStored(storageClient, file.PublicID)
	}

	return nil
}

// GetFileOwner exposes ownership for the authorization policy.
func (fls *FileService) GetFileOwner(fileID primitive.ObjectID) (primitive.ObjectID, error) {
	file, err := fls.GetFile(fileID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if file.UploadedBy == nil {
		return primitive.NilObjectID, nil
	}
	return *file.UploadedBy, nil
}
