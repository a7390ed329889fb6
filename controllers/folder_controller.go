package controllers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/auth"
	"resourcehub/models"
	"resourcehub/services"
	"resourcehub/utils"
)

type FolderController struct {
	folderService *services.FolderService
	statsService  *services.StatsService
}

func NewFolderController() *FolderController {
	return &FolderController{
		folderService: services.NewFolderService(),
		statsService:  services.NewStatsService(),
	}
}

// GetFolders lists active folders; public.
func (fc *FolderController) GetFolders(c *gin.Context) {
	page, limit := pagination(c)

	folders, total, err := fc.folderService.GetFolders(c.Query("department_id"), page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Folders retrieved", folders, page, limit, total)
}

// GetFolder returns one folder; public.
func (fc *FolderController) GetFolder(c *gin.Context) {
	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	folder, err := fc.folderService.GetFolder(folderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder retrieved", folder)
}

// GetFolderStats returns one folder's aggregates; public.
func (fc *FolderController) GetFolderStats(c *gin.Context) {
	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	stats, err := fc.statsService.GetFolderStats(folderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder statistics", stats)
}

// CreateFolder creates a folder; member and up.
func (fc *FolderController) CreateFolder(c *gin.Context) {
	actor := currentActor(c)
	if err := auth.Authorize(actor, auth.OpFolderCreate, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	var req models.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	folder, err := fc.folderService.CreateFolder(actor.ID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Folder created", folder)
}

// UpdateFolder edits a folder; creator or co-manager.
func (fc *FolderController) UpdateFolder(c *gin.Context) {
	folderID, err := fc.authorizeFolderMutation(c, auth.OpFolderUpdate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req models.FolderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	updated, err := fc.folderService.UpdateFolder(folderID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder updated", updated)
}

// DeleteFolder soft-deletes a folder; creator or co-manager. A non-empty
// folder needs a reassign_to target or the request is rejected with the
// blocking count.
func (fc *FolderController) DeleteFolder(c *gin.Context) {
	folderID, err := fc.authorizeFolderMutation(c, auth.OpFolderDelete)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var reassignTo *primitive.ObjectID
	if target := c.Query("reassign_to"); target != "" {
		targetID, err := utils.StringToObjectID(target)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid reassignment target ID")
			return
		}
		reassignTo = &targetID
	}

	if err := fc.folderService.DeleteFolder(folderID, reassignTo); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder deleted", nil)
}

// authorizeFolderMutation loads the folder and runs the ownership-aware
// policy check for a mutating operation.
func (fc *FolderController) authorizeFolderMutation(c *gin.Context, op auth.Operation) (primitive.ObjectID, error) {
	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, utils.NewValidationError("invalid folder id")
	}

	folder, err := fc.folderService.GetFolder(folderID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	target := &auth.Target{}
	if folder.CreatedBy != nil {
		target.OwnerID = *folder.CreatedBy
	}

	if err := auth.Authorize(currentActor(c), op, target); err != nil {
		return primitive.NilObjectID, err
	}

	return folderID, nil
}
