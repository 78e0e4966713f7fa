package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/internal/service"
)

// fail 按错误类型映射 HTTP 状态码
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrBusinessNotFound),
		errors.Is(err, service.ErrConnectionNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrStockExhausted),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidSchedule),
		errors.Is(err, service.ErrScheduleWithoutAt),
		errors.Is(err, service.ErrAdminOnly):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID 解析路径中的数字 ID，非法时直接写 400
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
