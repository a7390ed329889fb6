package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/models"
)

func TestBuildRegistryEntries(t *testing.T) {
	uploader := primitive.NewObjectID()
	payloads := []*UploadPayload{
		{Filename: "handbook.pdf", Data: []byte("pdf")},
		{Filename: "demo.mp4", Data: []byte("mp4")},
	}
	stored := []models.ResourceFile{
		{URL: "https://cdn.test/resources/a.pdf", PublicID: "resources/a.pdf", Format: "pdf", Size: 3},
		{URL: "https://cdn.test/resources/b.mp4", PublicID: "resources/b.mp4", Format: "mp4", Size: 3},
	}

	files := buildRegistryEntries(uploader, payloads, stored)
	require.Len(t, files, 2)

	for i, f := range files {
		// Ids are assigned before the insert so a failed batch can
		// still be identified and swept.
		assert.False(t, f.ID.IsZero())
		assert.Equal(t, payloads[i].Filename, f.Name)
		assert.Equal(t, stored[i].URL, f.URL)
		assert.Equal(t, stored[i].PublicID, f.PublicID)
		assert.Equal(t, models.ResourceTypeFile, f.Type)
		require.NotNil(t, f.UploadedBy)
		assert.Equal(t, uploader, *f.UploadedBy)
	}
	assert.Equal(t, models.FileResourceRaw, files[0].ResourceType)
	assert.Equal(t, models.FileResourceVideo, files[1].ResourceType)
}

func TestRegistryBatchFilter(t *testing.T) {
	files := []models.File{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}

	filter := registryBatchFilter(files)
	in, ok := filter["_id"].(bson.M)
	require.True(t, ok)
	ids, ok := in["$in"].([]primitive.ObjectID)
	require.True(t, ok)

	// Every id of the batch is swept, not just the ones known to have
	// been persisted: an ordered insert can fail mid-batch.
	require.Len(t, ids, 3)
	for i, f := range files {
		assert.Equal(t, f.ID, ids[i])
	}
}
