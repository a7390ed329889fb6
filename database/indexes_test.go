package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFolderIndexModels(t *testing.T) {
	indexes := folderIndexModels()
	require.NotEmpty(t, indexes)

	unique := indexes[0]
	keys, ok := unique.Keys.(bson.D)
	require.True(t, ok)
	require.Len(t, keys, 2)
	assert.Equal(t, "department_id", keys[0].Key)
	assert.Equal(t, "name", keys[1].Key)

	require.NotNil(t, unique.Options.Unique)
	assert.True(t, *unique.Options.Unique)

	// Uniqueness applies to active folders only; a soft-deleted folder
	// must not block recreating one with the same name.
	partial, ok := unique.Options.PartialFilterExpression.(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, partial["is_active"])
}

func TestResourceIndexModels(t *testing.T) {
	for _, index := range resourceIndexModels() {
		keys, ok := index.Keys.(bson.D)
		require.True(t, ok)
		assert.NotEmpty(t, keys)
	}
}
