package controllers

import (
	"github.com/gin-gonic/gin"

	"resourcehub/services"
	"resourcehub/utils"
)

type StatsController struct {
	statsService *services.StatsService
}

func NewStatsController() *StatsController {
	return &StatsController{
		statsService: services.NewStatsService(),
	}
}

// GetGlobalStats aggregates over every active resource; public.
func (sc *StatsController) GetGlobalStats(c *gin.Context) {
	stats, err := sc.statsService.GetGlobalStats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Statistics retrieved", stats)
}

// GetUserStats aggregates over one uploader's active resources; public.
func (sc *StatsController) GetUserStats(c *gin.Context) {
	userID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	stats, err := sc.statsService.GetUserStats(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Statistics retrieved", stats)
}
