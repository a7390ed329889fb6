package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Folder struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Slug          string              `bson:"slug" json:"slug"`
	Description   string              `bson:"description" json:"description"`
	DepartmentID  primitive.ObjectID  `bson:"department_id" json:"department_id"`
	CreatedBy     *primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	ResourceCount int                 `bson:"resource_count" json:"resource_count"`
	Position      int                 `bson:"position" json:"position"`
	IsActive      bool                `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}
