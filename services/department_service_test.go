package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDepartmentResourcesFilter(t *testing.T) {
	deptID := primitive.NewObjectID()
	filter := departmentResourcesFilter(deptID)

	assert.Equal(t, deptID, filter["department_id"])
	// The deletion guard counts every resource ever attached, including
	// soft-deleted ones; a department with history cannot be removed.
	assert.NotContains(t, filter, "is_active")
	assert.Len(t, filter, 1)
}

func TestActiveDepartmentResourcesFilter(t *testing.T) {
	deptID := primitive.NewObjectID()
	filter := activeDepartmentResourcesFilter(deptID)

	assert.Equal(t, deptID, filter["department_id"])
	// resource_count reflects active resources only.
	assert.Equal(t, true, filter["is_active"])
}
