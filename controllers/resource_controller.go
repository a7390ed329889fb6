package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/auth"
	"resourcehub/models"
	"resourcehub/services"
	"resourcehub/utils"
)

type ResourceController struct {
	resourceService *services.ResourceService
}

func NewResourceController() *ResourceController {
	return &ResourceController{
		resourceService: services.NewResourceService(),
	}
}

// GetResources lists active resources with filters; public, never bumps
// view counters.
func (rc *ResourceController) GetResources(c *gin.Context) {
	page, limit := pagination(c)

	filters := &services.ResourceFilters{
		Search:       c.Query("search"),
		Type:         c.Query("type"),
		Tag:          c.Query("tag"),
		DepartmentID: c.Query("department_id"),
		FolderID:     c.Query("folder_id"),
		UploaderID:   c.Query("uploader_id"),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}

	resources, total, err := rc.resourceService.GetResources(page, limit, filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Resources retrieved", resources, page, limit, total)
}

// GetResource returns one resource; public. The fetch increments the view
// counter as a read side effect.
func (rc *ResourceController) GetResource(c *gin.Context) {
	resourceID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resource ID")
		return
	}

	resource, err := rc.resourceService.GetResource(resourceID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Resource retrieved", resource)
}

// CreateResource creates a file or link resource; member and up.
func (rc *ResourceController) CreateResource(c *gin.Context) {
	actor := currentActor(c)
	if err := auth.Authorize(actor, auth.OpResourceCreate, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	req, payload, err := rc.bindResourceCreate(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	resource, err := rc.resourceService.CreateResource(actor.ID, req, payload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Resource created", resource)
}

// UpdateResource edits a resource; owner or co-manager. Type changes are
// ignored by the service.
func (rc *ResourceController) UpdateResource(c *gin.Context) {
	resourceID, err := rc.authorizeResourceMutation(c, auth.OpResourceUpdate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	req, payload, err := rc.bindResourceUpdate(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	resource, err := rc.resourceService.UpdateResource(resourceID, req, payload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Resource updated", resource)
}

// DeleteResource soft-deletes; owner or co-manager.
func (rc *ResourceController) DeleteResource(c *gin.Context) {
	resourceID, err := rc.authorizeResourceMutation(c, auth.OpResourceDelete)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := rc.resourceService.DeleteResource(resourceID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Resource deleted", nil)
}

// AttachFiles uploads up to ten sub-files in one all-or-nothing batch;
// owner or co-manager.
func (rc *ResourceController) AttachFiles(c *gin.Context) {
	resourceID, err := rc.authorizeResourceMutation(c, auth.OpResourceAttach)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form")
		return
	}

	var payloads []*services.UploadPayload
	for _, fh := range form.File["files"] {
		payload, err := readUploadPayload(fh)
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file")
			return
		}
		payloads = append(payloads, payload)
	}

	files, err := rc.resourceService.AttachFiles(resourceID, payloads)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Files attached", files)
}

// DetachFile removes one sub-file; owner or co-manager.
func (rc *ResourceController) DetachFile(c *gin.Context) {
	resourceID, err := rc.authorizeResourceMutation(c, auth.OpResourceDetach)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	fileID, err := utils.StringToObjectID(c.Param("fileId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid file ID")
		return
	}

	if err := rc.resourceService.DetachFile(resourceID, fileID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "File detached", nil)
}

// ToggleFavorite flips favorite membership for the caller; any
// authenticated role.
func (rc *ResourceController) ToggleFavorite(c *gin.Context) {
	actor := currentActor(c)
	if err := auth.Authorize(actor, auth.OpResourceFavorite, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	resourceID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resource ID")
		return
	}

	result, err := rc.resourceService.ToggleFavorite(resourceID, actor.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Favorite toggled", result)
}

// GetFavorites lists the caller's favorited resources.
func (rc *ResourceController) GetFavorites(c *gin.Context) {
	actor := currentActor(c)
	if err := auth.Authorize(actor, auth.OpResourceFavorite, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	page, limit := pagination(c)
	resources, total, err := rc.resourceService.GetFavorites(actor.ID, page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Favorites retrieved", resources, page, limit, total)
}

// TrackDownload increments the download counter; public.
func (rc *ResourceController) TrackDownload(c *gin.Context) {
	resourceID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resource ID")
		return
	}

	resource, err := rc.resourceService.TrackDownload(resourceID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	url := resource.FileURL
	if resource.Type == models.ResourceTypeLink {
		url = resource.URL
	}

	utils.SuccessResponse(c, "Download tracked", gin.H{
		"url":       url,
		"downloads": resource.Downloads,
	})
}

func (rc *ResourceController) authorizeResourceMutation(c *gin.Context, op auth.Operation) (primitive.ObjectID, error) {
	resourceID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, utils.NewValidationError("invalid resource id")
	}

	resource, err := rc.resourceService.PeekResource(resourceID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	target := &auth.Target{}
	if resource.UploadedBy != nil {
		target.OwnerID = *resource.UploadedBy
	}

	if err := auth.Authorize(currentActor(c), op, target); err != nil {
		return primitive.NilObjectID, err
	}

	return resourceID, nil
}

// bindResourceCreate accepts JSON for link resources and multipart form
// for file resources; tags and contributors arrive as either a list or a
// delimited string.
func (rc *ResourceController) bindResourceCreate(c *gin.Context) (*models.ResourceCreateRequest, *services.UploadPayload, error) {
	if !isMultipart(c) {
		var req models.ResourceCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, nil, utils.NewValidationError(err.Error())
		}
		return &req, nil, nil
	}

	var req models.ResourceCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, nil, utils.NewValidationError(err.Error())
	}
	req.Tags = models.StringList(utils.SplitAndTrim(c.PostForm("tags"), ","))
	req.Contributors = models.StringList(utils.SplitAndTrim(c.PostForm("contributors"), ","))

	payload, err := formPayload(c, "file")
	if err != nil {
		return nil, nil, err
	}

	return &req, payload, nil
}

func (rc *ResourceController) bindResourceUpdate(c *gin.Context) (*models.ResourceUpdateRequest, *services.UploadPayload, error) {
	if !isMultipart(c) {
		var req models.ResourceUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, nil, utils.NewValidationError(err.Error())
		}
		return &req, nil, nil
	}

	var req models.ResourceUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, nil, utils.NewValidationError(err.Error())
	}
	if tags := c.PostForm("tags"); tags != "" {
		req.Tags = models.StringList(utils.SplitAndTrim(tags, ","))
	}
	if contributors := c.PostForm("contributors"); contributors != "" {
		req.Contributors = models.StringList(utils.SplitAndTrim(contributors, ","))
	}

	payload, err := formPayload(c, "file")
	if err != nil {
		return nil, nil, err
	}

	return &req, payload, nil
}

func formPayload(c *gin.Context, field string) (*services.UploadPayload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent file field is fine; the service decides whether a
		// payload is mandatory.
		return nil, nil
	}

	payload, err := readUploadPayload(fh)
	if err != nil {
		return nil, utils.NewValidationError("failed to read uploaded file")
	}
	return payload, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
