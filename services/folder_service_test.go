package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/models"
)

func TestActiveFolderNameFilter(t *testing.T) {
	deptID := primitive.NewObjectID()

	t.Run("scopes uniqueness to active folders", func(t *testing.T) {
		filter := activeFolderNameFilter(deptID, "Onboarding", nil)

		assert.Equal(t, deptID, filter["department_id"])
		assert.Equal(t, "Onboarding", filter["name"])
		// A soft-deleted folder must never match, so the same name can
		// be recreated after deletion.
		assert.Equal(t, true, filter["is_active"])
		assert.NotContains(t, filter, "_id")
	})

	t.Run("excludes the folder being renamed", func(t *testing.T) {
		self := primitive.NewObjectID()
		filter := activeFolderNameFilter(deptID, "Onboarding", &self)

		require.Contains(t, filter, "_id")
		assert.Equal(t, bson.M{"$ne": self}, filter["_id"])
	})
}

func TestActiveFolderResourcesFilter(t *testing.T) {
	folderID := primitive.NewObjectID()
	filter := activeFolderResourcesFilter(folderID)

	assert.Equal(t, folderID, filter["folder_id"])
	assert.Equal(t, true, filter["is_active"])
	assert.Len(t, filter, 2)
}

func TestReassignResourcesUpdate(t *testing.T) {
	target := &models.Folder{
		ID:           primitive.NewObjectID(),
		DepartmentID: primitive.NewObjectID(),
	}
	update := reassignResourcesUpdate(target)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	// A reassigned resource must land in the target's department too;
	// folder and department references move together.
	assert.Equal(t, target.ID, set["folder_id"])
	assert.Equal(t, target.DepartmentID, set["department_id"])
	assert.Contains(t, set, "updated_at")
}

func TestFolderCountAdjustment(t *testing.T) {
	update := folderCountAdjustment(7)

	inc, ok := update["$inc"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 7, inc["resource_count"])

	// The reassignment sweep and the counter adjustment share the same
	// filter, so the target grows by exactly the number of moved rows.
	moved := activeFolderResourcesFilter(primitive.NewObjectID())
	assert.Equal(t, true, moved["is_active"])

	down := folderCountAdjustment(-3)
	assert.Equal(t, -3, down["$inc"].(bson.M)["resource_count"])
}
