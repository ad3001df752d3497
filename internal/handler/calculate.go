package handler

import (
	"errors"
	"net/http"

	"cppg-calc-backend/internal/model"
	"cppg-calc-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Calculate 单次成本效益测算
func Calculate(c *gin.Context) {
	var req model.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	// 情景乘数缺省为1.0（不缩放）
	if req.ScenarioMultiplier == 0 {
		req.ScenarioMultiplier = 1.0
	}

	result, err := service.Calculate(&req)
	if err != nil {
		var undefErr *model.UndefinedRatioError
		if errors.As(err, &undefErr) {
			// 比值无定义是预期内状态：返回收益分解供前端展示，而不是数值
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": undefErr.Error(),
				"gains": undefErr.Gains,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Compare 批量比较多个干预方案
func Compare(maxItems int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.CompareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "请求参数错误: " + err.Error(),
			})
			return
		}

		resp, err := service.CompareInterventions(&req, maxItems)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
