package handler

import (
	"net/http"

	"cppg-calc-backend/internal/presets"

	"github.com/gin-gonic/gin"
)

// GetPresets 获取换算假设预设列表
func GetPresets(c *gin.Context) {
	keyword := c.Query("keyword")
	refresh := c.Query("refresh") == "1"

	list, fromCache := presets.SearchPresetsWithRefresh(keyword, refresh)
	if list == nil && keyword == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取预设列表失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      list,
		"fromCache": fromCache,
	})
}

// GetPreset 按ID获取单组预设
func GetPreset(c *gin.Context) {
	id := c.Param("id")

	preset, err := presets.GetPreset(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, preset)
}
