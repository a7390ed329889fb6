package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/models"
	"resourcehub/utils"
)

// fakeStorage records uploads and deletions in memory and can be told to
// fail specific filenames.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failOn  string
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (fs *fakeStorage) Upload(ctx context.Context, key string, data []byte) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.failOn != "" && strings.HasSuffix(key, fs.failOn) {
		return "", fs.err
	}
	fs.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (fs *fakeStorage) Delete(ctx context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	delete(fs.objects, key)
	fs.deleted = append(fs.deleted, key)
	return nil
}

func (fs *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, ok := fs.objects[key]
	return ok, nil
}

func (fs *fakeStorage) HealthCheck(ctx context.Context) error { return nil }
func (fs *fakeStorage) ProviderName() string                  { return "fake" }

func (fs *fakeStorage) stored() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.objects)
}

func TestUploadOne(t *testing.T) {
	client := newFakeStorage()

	file, err := uploadOne(context.Background(), client, &UploadPayload{
		Filename: "report.pdf",
		Data:     []byte("content"),
	})
	require.NoError(t, err)

	assert.False(t, file.ID.IsZero())
	assert.True(t, strings.HasPrefix(file.PublicID, "resources/"))
	assert.True(t, strings.HasSuffix(file.PublicID, ".pdf"))
	assert.Equal(t, "https://cdn.test/"+file.PublicID, file.URL)
	assert.Equal(t, "pdf", file.Format)
	assert.Equal(t, int64(len("content")), file.Size)
}

func TestUploadBatchAllSucceed(t *testing.T) {
	client := newFakeStorage()

	payloads := []*UploadPayload{
		{Filename: "a.pdf", Data: []byte("aa")},
		{Filename: "b.png", Data: []byte("bb")},
		{Filename: "c.txt", Data: []byte("cc")},
	}

	files, err := uploadBatch(context.Background(), client, payloads)
	require.NoError(t, err)
	require.Len(t, files, 3)

	// Results keep payload order.
	assert.Equal(t, "pdf", files[0].Format)
	assert.Equal(t, "png", files[1].Format)
	assert.Equal(t, "txt", files[2].Format)
	assert.Equal(t, 3, client.stored())
}

func TestUploadBatchAllOrNothing(t *testing.T) {
	client := newFakeStorage()
	client.failOn = ".png"
	client.err = errors.New("bucket unavailable")

	payloads := []*UploadPayload{
		{Filename: "a.pdf", Data: []byte("aa")},
		{Filename: "b.png", Data: []byte("bb")},
		{Filename: "c.txt", Data: []byte("cc")},
	}

	files, err := uploadBatch(context.Background(), client, payloads)
	assert.Error(t, err)
	assert.Nil(t, files)

	// Whatever was stored before the failure is removed again.
	assert.Equal(t, 0, client.stored())
}

func TestObjectKey(t *testing.T) {
	key := objectKey("report.PDF")
	assert.True(t, strings.HasPrefix(key, "resources/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	// No extension, no trailing dot.
	bare := objectKey("Makefile")
	assert.True(t, strings.HasPrefix(bare, "resources/"))
	assert.False(t, strings.Contains(bare, "."))

	assert.NotEqual(t, objectKey("a.txt"), objectKey("a.txt"))
}

func TestClassifyStorageError(t *testing.T) {
	err := classifyStorageError(context.DeadlineExceeded)
	assert.True(t, utils.IsTimeout(err))

	wrapped := classifyStorageError(errors.New("connection reset"))
	assert.False(t, utils.IsTimeout(wrapped))

	var external *utils.ExternalServiceError
	assert.True(t, errors.As(wrapped, &external))
	assert.Equal(t, "object storage", external.Service)
}

func TestValidateCreateRequest(t *testing.T) {
	deptID := "507f1f77bcf86cd799439011"
	payload := &UploadPayload{Filename: "a.pdf", Data: []byte("x")}

	tests := []struct {
		name    string
		req     *models.ResourceCreateRequest
		payload *UploadPayload
		wantErr string
	}{
		{
			name:    "valid file",
			req:     &models.ResourceCreateRequest{Title: "Quarterly Report", Type: models.ResourceTypeFile, DepartmentID: deptID},
			payload: payload,
		},
		{
			name: "valid link",
			req:  &models.ResourceCreateRequest{Title: "Style Guide", Type: models.ResourceTypeLink, DepartmentID: deptID, URL: "https://example.com"},
		},
		{
			name:    "missing title",
			req:     &models.ResourceCreateRequest{Type: models.ResourceTypeFile, DepartmentID: deptID},
			payload: payload,
			wantErr: "title is required",
		},
		{
			name:    "title too short",
			req:     &models.ResourceCreateRequest{Title: "x", Type: models.ResourceTypeFile, DepartmentID: deptID},
			payload: payload,
			wantErr: "title must be at least 2",
		},
		{
			name:    "missing department",
			req:     &models.ResourceCreateRequest{Title: "Quarterly Report", Type: models.ResourceTypeFile},
			payload: payload,
			wantErr: "department_id is required",
		},
		{
			name:    "missing type",
			req:     &models.ResourceCreateRequest{Title: "Quarterly Report", DepartmentID: deptID},
			wantErr: "type is required",
		},
		{
			name:    "unknown type",
			req:     &models.ResourceCreateRequest{Title: "Quarterly Report", Type: "folder", DepartmentID: deptID},
			wantErr: "type must be one of",
		},
		{
			name:    "file without payload",
			req:     &models.ResourceCreateRequest{Title: "Quarterly Report", Type: models.ResourceTypeFile, DepartmentID: deptID},
			wantErr: "payload",
		},
		{
			name:    "link without url",
			req:     &models.ResourceCreateRequest{Title: "Style Guide", Type: models.ResourceTypeLink, DepartmentID: deptID},
			wantErr: "url is required",
		},
		{
			name:    "link with bad url",
			req:     &models.ResourceCreateRequest{Title: "Style Guide", Type: models.ResourceTypeLink, DepartmentID: deptID, URL: "ftp://example.com"},
			wantErr: "valid http",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreateRequest(tt.req, tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, utils.IsValidation(err))

			var validation *utils.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Contains(t, strings.Join(validation.Fields, "; "), tt.wantErr)
		})
	}
}

func TestBuildResourceFilter(t *testing.T) {
	t.Run("default listing excludes soft-deleted resources", func(t *testing.T) {
		filter := buildResourceFilter(&ResourceFilters{})

		assert.Equal(t, bson.M{"is_active": true}, filter)
	})

	t.Run("composes dimensions onto the active scope", func(t *testing.T) {
		deptID := primitive.NewObjectID()
		filter := buildResourceFilter(&ResourceFilters{
			Search:       "handbook",
			Type:         models.ResourceTypeFile,
			Tag:          "hr",
			DepartmentID: deptID.Hex(),
		})

		// Narrowing never drops the active scope.
		assert.Equal(t, true, filter["is_active"])
		assert.Equal(t, models.ResourceTypeFile, filter["type"])
		assert.Equal(t, "hr", filter["tags"])
		assert.Equal(t, deptID, filter["department_id"])

		or, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		assert.Len(t, or, 3)
	})

	t.Run("ignores malformed ids", func(t *testing.T) {
		filter := buildResourceFilter(&ResourceFilters{DepartmentID: "not-an-id", FolderID: "nope"})

		assert.NotContains(t, filter, "department_id")
		assert.NotContains(t, filter, "folder_id")
	})
}

func TestFavoriteFilters(t *testing.T) {
	resourceID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	pull := favoritePullFilter(resourceID, userID)
	add := favoriteAddFilter(resourceID, userID)

	// The pull matches only existing members and the add only
	// non-members, so a repeated toggle in either direction is a no-op
	// rather than a duplicate or phantom removal.
	assert.Equal(t, userID, pull["favorited_by"])
	assert.Equal(t, bson.M{"$ne": userID}, add["favorited_by"])

	for _, filter := range []bson.M{pull, add} {
		assert.Equal(t, resourceID, filter["_id"])
		assert.Equal(t, true, filter["is_active"])
	}
}

func TestFolderMoveFields(t *testing.T) {
	folder := &models.Folder{
		ID:           primitive.NewObjectID(),
		DepartmentID: primitive.NewObjectID(),
	}

	fields := folderMoveFields(folder)

	// Moving a resource into a folder moves it into the folder's
	// department; the two references never diverge.
	assert.Equal(t, folder.ID, fields["folder_id"])
	assert.Equal(t, folder.DepartmentID, fields["department_id"])
	assert.Len(t, fields, 2)
}
