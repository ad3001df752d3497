package handler

import (
	"errors"
	"net/http"

	"cppg-calc-backend/internal/model"
	"cppg-calc-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Scenario 乘数网格灵敏度扫描
func Scenario(c *gin.Context) {
	var req model.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	result, fromCache, err := service.ScenarioSweep(&req)
	if err != nil {
		var undefErr *model.UndefinedRatioError
		if errors.As(err, &undefErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": undefErr.Error(),
				"gains": undefErr.Gains,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      result,
		"fromCache": fromCache,
	})
}
