package admin

import (
	"github.com/shabihhaider/waterbottle-admin/internal/http/response"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboard 获取仪表盘汇总
func (h *Handler) GetDashboard(c *gin.Context) {
	result, err := h.DashboardService.GetDashboard(c.Request.Context(), service.DashboardQueryInput{
		ForceRefresh: queryBool(c, "refresh"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取仪表盘数据失败", err)
		return
	}

	response.Success(c, result)
}
