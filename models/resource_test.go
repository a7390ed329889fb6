package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResourceIsFavoritedBy(t *testing.T) {
	fan := primitive.NewObjectID()
	other := primitive.NewObjectID()

	resource := &Resource{FavoritedBy: []primitive.ObjectID{fan}}

	assert.True(t, resource.IsFavoritedBy(fan))
	assert.False(t, resource.IsFavoritedBy(other))

	empty := &Resource{}
	assert.False(t, empty.IsFavoritedBy(fan))
}
