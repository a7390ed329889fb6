package controllers

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"resourcehub/auth"
	"resourcehub/services"
	"resourcehub/utils"
)

// currentActor builds the policy actor for the request, nil when anonymous.
func currentActor(c *gin.Context) *auth.Actor {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		return nil
	}
	return auth.ActorFromUser(user)
}

// pagination parses the shared page/limit query contract.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// readUploadPayload buffers one multipart file into an upload payload.
func readUploadPayload(fh *multipart.FileHeader) (*services.UploadPayload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	return &services.UploadPayload{Filename: fh.Filename, Data: data}, nil
}
