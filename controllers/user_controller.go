package controllers

import (
	"github.com/gin-gonic/gin"

	"resourcehub/auth"
	"resourcehub/models"
	"resourcehub/services"
	"resourcehub/utils"
)

type UserController struct {
	userService  *services.UserService
	statsService *services.StatsService
}

func NewUserController() *UserController {
	return &UserController{
		userService:  services.NewUserService(),
		statsService: services.NewStatsService(),
	}
}

// GetProfile returns the caller's account.
func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user.Profile())
}

// UpdateProfile edits the caller's own profile.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	updated, err := uc.userService.UpdateProfile(user.ID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated", updated.Profile())
}

// GetMyStats returns the caller's aggregate statistics.
func (uc *UserController) GetMyStats(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	stats, err := uc.statsService.GetUserStats(user.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "User statistics", stats)
}

// GetUsers lists accounts; co-manager only.
func (uc *UserController) GetUsers(c *gin.Context) {
	if err := auth.Authorize(currentActor(c), auth.OpUserList, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	page, limit := pagination(c)
	filters := &services.UserFilters{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}

	users, total, err := uc.userService.GetUsers(page, limit, filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Users retrieved", users, page, limit, total)
}

// ChangeRole promotes or demotes an account; co-manager only.
func (uc *UserController) ChangeRole(c *gin.Context) {
	if err := auth.Authorize(currentActor(c), auth.OpUserManage, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	userID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	var req models.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	user, err := uc.userService.ChangeRole(userID, req.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Role updated", user)
}

// DeactivateUser soft-deletes an account; co-manager only.
func (uc *UserController) DeactivateUser(c *gin.Context) {
	if err := auth.Authorize(currentActor(c), auth.OpUserManage, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	userID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	if err := uc.userService.DeactivateUser(userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "User deactivated", nil)
}
