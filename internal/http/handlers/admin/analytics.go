package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/http/response"
	"github.com/shabihhaider/waterbottle-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsRequest 分析查询请求（POST 载荷）
type AnalyticsRequest struct {
	Range   string `json:"range"`
	From    string `json:"from"`
	To      string `json:"to"`
	Refresh bool   `json:"refresh"`
}

// GetAnalyticsOverview 获取经营分析总览
//
// GET 走查询参数，POST 走 JSON 载荷，二者字段一致。
func (h *Handler) GetAnalyticsOverview(c *gin.Context) {
	input := service.AnalyticsQueryInput{
		Range:        c.Query("range"),
		From:         parseTimeQuery(c, "from"),
		To:           parseTimeQuery(c, "to"),
		ForceRefresh: queryBool(c, "refresh"),
	}
	if c.Request.Method == http.MethodPost {
		var req AnalyticsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "请求参数不合法", err)
			return
		}
		input = service.AnalyticsQueryInput{
			Range:        req.Range,
			From:         parseDateString(req.From),
			To:           parseDateString(req.To),
			ForceRefresh: req.Refresh,
		}
	}

	result, err := h.AnalyticsService.GetOverview(c.Request.Context(), input)
	if err != nil {
		respondError(c, response.CodeInternal, "获取分析数据失败", err)
		return
	}

	response.Success(c, result)
}

func parseDateString(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}
