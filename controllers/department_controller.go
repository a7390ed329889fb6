package controllers

import (
	"github.com/gin-gonic/gin"

	"resourcehub/auth"
	"resourcehub/models"
	"resourcehub/services"
	"resourcehub/utils"
)

type DepartmentController struct {
	departmentService *services.DepartmentService
	statsService      *services.StatsService
}

func NewDepartmentController() *DepartmentController {
	return &DepartmentController{
		departmentService: services.NewDepartmentService(),
		statsService:      services.NewStatsService(),
	}
}

// GetDepartments lists active departments; public.
func (dc *DepartmentController) GetDepartments(c *gin.Context) {
	page, limit := pagination(c)

	departments, total, err := dc.departmentService.GetDepartments(page, limit, c.Query("search"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Departments retrieved", departments, page, limit, total)
}

// GetDepartment returns one department by id or slug; public.
func (dc *DepartmentController) GetDepartment(c *gin.Context) {
	ref := c.Param("id")

	var dept *models.Department
	var err error
	if utils.IsValidObjectID(ref) {
		deptID, _ := utils.StringToObjectID(ref)
		dept, err = dc.departmentService.GetDepartment(deptID)
	} else {
		dept, err = dc.departmentService.GetDepartmentBySlug(ref)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Department retrieved", dept)
}

// GetDepartmentStats returns one department's aggregates; public.
func (dc *DepartmentController) GetDepartmentStats(c *gin.Context) {
	deptID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid department ID")
		return
	}

	stats, err := dc.statsService.GetDepartmentStats(deptID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Department statistics", stats)
}

// CreateDepartment creates a department; co-manager only.
func (dc *DepartmentController) CreateDepartment(c *gin.Context) {
	if err := auth.Authorize(currentActor(c), auth.OpDepartmentCreate, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	var req models.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	dept, err := dc.departmentService.CreateDepartment(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Department created", dept)
}

// UpdateDepartment edits a department; co-manager only.
func (dc *DepartmentController) UpdateDepartment(c *gin.Context) {
	if err := auth.Authorize(currentActor(c), auth.OpDepartmentUpdate, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	deptID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid department ID")
		return
	}

	var req models.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	dept, err := dc.departmentService.UpdateDepartment(deptID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Department updated", dept)
}

// DeleteDepartment soft-deletes a department; co-manager only. Rejected
// while any resource still references it.
func (dc *DepartmentController) DeleteDepartment(c *gin.Context) {
	if err := auth.Authorize(currentActor(c), auth.OpDepartmentDelete, nil); err != nil {
		utils.RespondError(c, err)
		return
	}

	deptID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid department ID")
		return
	}

	if err := dc.departmentService.DeleteDepartment(deptID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Department deleted", nil)
}
