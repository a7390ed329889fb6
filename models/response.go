package models

import (
	"encoding/json"
	"strings"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// StringList accepts either a JSON array of strings or a single
// comma-delimited string and normalizes to a trimmed list.
type StringList []string

func (sl *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*sl = trimList(list)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*sl = trimList(strings.Split(single, ","))
	return nil
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=visitor member co-manager"`
}

type DepartmentRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
}

type FolderCreateRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Description  string `json:"description"`
	DepartmentID string `json:"department_id" binding:"required"`
	Position     int    `json:"position"`
}

type FolderUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Position    *int   `json:"position"`
}

type FileLinkRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	URL  string `json:"url" binding:"required,url"`
}

// ResourceCreateRequest carries the metadata side of a creation; for
// type=file the binary payload arrives separately as multipart content.
type ResourceCreateRequest struct {
	Title        string     `json:"title" form:"title" validate:"required,min=2,max=200"`
	Description  string     `json:"description" form:"description"`
	Type         string     `json:"type" form:"type" validate:"required,oneof=file link"`
	DepartmentID string     `json:"department_id" form:"department_id" validate:"required"`
	FolderID     string     `json:"folder_id" form:"folder_id"`
	URL          string     `json:"url" form:"url"`
	LinkType     string     `json:"link_type" form:"link_type"`
	Tags         StringList `json:"tags" form:"-"`
	Contributors StringList `json:"contributors" form:"-"`
}

// ResourceUpdateRequest updates metadata only; a `type` value, if sent,
// is ignored rather than rejected.
type ResourceUpdateRequest struct {
	Title        string     `json:"title" form:"title"`
	Description  *string    `json:"description" form:"description"`
	FolderID     string     `json:"folder_id" form:"folder_id"`
	URL          string     `json:"url" form:"url"`
	LinkType     string     `json:"link_type" form:"link_type"`
	Tags         StringList `json:"tags" form:"-"`
	Contributors StringList `json:"contributors" form:"-"`
}

type FavoriteResponse struct {
	Favorited bool `json:"favorited"`
	Count     int  `json:"count"`
}
