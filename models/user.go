package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles ordered by administrative power.
const (
	RoleVisitor   = "visitor"
	RoleMember    = "member"
	RoleCoManager = "co-manager"
)

type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email          string              `bson:"email" json:"email" validate:"required,email"`
	Password       string              `bson:"password" json:"-" validate:"required,min=6"`
	Role           string              `bson:"role" json:"role"`
	DepartmentID   *primitive.ObjectID `bson:"department_id,omitempty" json:"department_id,omitempty"`
	UploadCount    int                 `bson:"upload_count" json:"upload_count"`
	TotalViews     int64               `bson:"total_views" json:"total_views"`
	TotalDownloads int64               `bson:"total_downloads" json:"total_downloads"`
	IsActive       bool                `bson:"is_active" json:"is_active"`
	LastLoginAt    *time.Time          `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// UserProfile is the public shape of an account returned by the profile
// and auth endpoints; internal counters and flags stay out of it.
type UserProfile struct {
	ID           primitive.ObjectID  `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	DepartmentID *primitive.ObjectID `json:"department_id,omitempty"`
	UploadCount  int                 `json:"upload_count"`
}

// Profile projects the account onto its public shape.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		UploadCount:  u.UploadCount,
	}
}
