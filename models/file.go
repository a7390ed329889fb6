package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage resource types for registry entries.
const (
	FileResourceImage = "image"
	FileResourceVideo = "video"
	FileResourceRaw   = "raw"
	FileResourceAuto  = "auto"
	FileResourceLink  = "link"
)

// File is an entry in the bulk-upload registry. It is a standalone record,
// not embedded in a Resource; external links have no PublicID.
type File struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name" validate:"required"`
	URL          string              `bson:"url" json:"url" validate:"required"`
	PublicID     string              `bson:"public_id,omitempty" json:"public_id,omitempty"`
	Format       string              `bson:"format,omitempty" json:"format,omitempty"`
	Size         int64               `bson:"size" json:"size"`
	Type         string              `bson:"type" json:"type"`
	ResourceType string              `bson:"resource_type" json:"resource_type"`
	UploadedBy   *primitive.ObjectID `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}
