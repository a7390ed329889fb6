package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource types. Type is immutable after creation.
const (
	ResourceTypeFile = "file"
	ResourceTypeLink = "link"
)

// Link subtypes for type=link resources.
const (
	LinkTypeVideo    = "video"
	LinkTypeArticle  = "article"
	LinkTypeWebsite  = "website"
	LinkTypeDocument = "document"
	LinkTypeOther    = "other"
)

// ResourceFile is a sub-upload embedded in a resource's files list.
// External links stored here carry no PublicID.
type ResourceFile struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL      string             `bson:"url" json:"url"`
	PublicID string             `bson:"public_id,omitempty" json:"public_id,omitempty"`
	Format   string             `bson:"format,omitempty" json:"format,omitempty"`
	Size     int64              `bson:"size" json:"size"`
}

type Resource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required,min=2,max=200"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type" validate:"required,oneof=file link"`

	// Populated for type=file.
	FileURL    string `bson:"file_url,omitempty" json:"file_url,omitempty"`
	PublicID   string `bson:"public_id,omitempty" json:"public_id,omitempty"`
	FileFormat string `bson:"file_format,omitempty" json:"file_format,omitempty"`
	FileSize   int64  `bson:"file_size,omitempty" json:"file_size,omitempty"`

	// Populated for type=link.
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
	LinkType string `bson:"link_type,omitempty" json:"link_type,omitempty"`

	DepartmentID primitive.ObjectID   `bson:"department_id" json:"department_id"`
	FolderID     *primitive.ObjectID  `bson:"folder_id,omitempty" json:"folder_id,omitempty"`
	UploadedBy   *primitive.ObjectID  `bson:"uploaded_by,omitempty" json:"uploaded_by,omitempty"`
	Tags         []string             `bson:"tags" json:"tags"`
	Contributors []string             `bson:"contributors" json:"contributors"`
	Views        int64                `bson:"views" json:"views"`
	Downloads    int64                `bson:"downloads" json:"downloads"`
	FavoritedBy  []primitive.ObjectID `bson:"favorited_by" json:"favorited_by"`
	Files        []ResourceFile       `bson:"files" json:"files"`
	IsActive     bool                 `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

// IsFavoritedBy reports set membership in favorited_by.
func (r *Resource) IsFavoritedBy(userID primitive.ObjectID) bool {
	for _, id := range r.FavoritedBy {
		if id == userID {
			return true
		}
	}
	return false
}
