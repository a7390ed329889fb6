package controllers

import (
	"github.com/gin-gonic/gin"

	"resourcehub/auth"
	"resourcehub/models"
	"resourcehub/services"
	"resourcehub/utils"
)

type FileController struct {
	fileService *services.FileService
}

func NewFileController() *FileController {
	return &FileController{
		fileService: services.NewFileService(),
	}
}

// RegisterUploads stores a batch of standalone files; member and up.
func (fc *FileController) RegisterUploads(c *gin.Context) {
	actor := currentActor(c)
	if err := auth.Authorize(actor, auth.OpFileRegister, nil); err != nil {
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

	files, err := fc.fileService.RegisterUploads(actor.ID, payloads)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Files registered", files)
}

// RegisterLink records an external link in the registry; member and up.
func (fc *FileController) RegisterLink(c *gin.Context) {
	actor := currentActor(c)
	if err := auth.Authorize(actor, auth.OpFileRegister, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	var req models.FileLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	file, err := fc.fileService.RegisterLink(actor.ID, req.Name, req.URL)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Link registered", file)
}

// GetFiles lists registry entries; public.
func (fc *FileController) GetFiles(c *gin.Context) {
	page, limit := pagination(c)

	filters := &services.FileFilters{
		Search:       c.Query("search"),
		ResourceType: c.Query("resource_type"),
	}

	files, total, err := fc.fileService.GetFiles(page, limit, filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Files retrieved", files, page, limit, total)
}

// GetFile returns one registry entry; public.
func (fc *FileController) GetFile(c *gin.Context) {
	fileID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid file ID")
		return
	}

	file, err := fc.fileService.GetFile(fileID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "File retrieved", file)
}

// DeleteFile hard-deletes a registry entry; owner or co-manager.
func (fc *FileController) DeleteFile(c *gin.Context) {
	fileID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid file ID")
		return
	}

	ownerID, err := fc.fileService.GetFileOwner(fileID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	target := &auth.Target{OwnerID: ownerID}
	if err := auth.Authorize(currentActor(c), auth.OpFileDelete, target); err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := fc.fileService.DeleteFile(fileID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "File deleted", nil)
}
