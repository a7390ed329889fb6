package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserProfile(t *testing.T) {
	deptID := primitive.NewObjectID()
	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         "Dana Reyes",
		Email:        "dana@example.com",
		Password:     "$2a$10$notarealhash",
		Role:         RoleMember,
		DepartmentID: &deptID,
		UploadCount:  4,
		TotalViews:   120,
		IsActive:     true,
	}

	profile := user.Profile()

	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, user.Name, profile.Name)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, RoleMember, profile.Role)
	assert.Equal(t, &deptID, profile.DepartmentID)
	assert.Equal(t, 4, profile.UploadCount)

	// The projection carries no credential or internal counter fields.
	raw, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "total_views")
	assert.NotContains(t, string(raw), "is_active")
}
