package main

import (
	"bufio"
	"log"
	"net/http"
	"os"
	"strings"

	"cppg-calc-backend/internal/cache"
	"cppg-calc-backend/internal/config"
	"cppg-calc-backend/internal/handler"
	"cppg-calc-backend/internal/presets"
	"cppg-calc-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	// 手动加载 .env 文件
	file, err := os.Open(".env")
	if err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			os.Setenv(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
}

func main() {
	cfg := config.Load()

	// Redis可用则用Redis缓存，否则降级为进程内缓存
	if cfg.Cache.RedisAddr != "" {
		if err := cache.InitRedis(cfg.Cache.RedisAddr); err != nil {
			log.Printf("Redis不可用，使用内存缓存: %v", err)
		} else {
			defer cache.Close()
			provider := cache.NewRedisProvider()
			presets.SetCacheProvider(provider)
			service.SetScenarioCacheProvider(provider)
		}
	}

	presets.Configure(cfg.Presets.BankPath, cfg.Cache.PresetTTL)
	service.ConfigureScenarioCache(cfg.Cache.ScenarioTTL)

	r := gin.Default()

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 邀请码验证（未配置 INVITE_CODE 时中间件直接放行）
	r.POST("/api/auth/verify", handler.VerifyInviteCode)

	// 注册路由
	api := r.Group("/api")
	api.Use(handler.AuthMiddleware())
	{
		// 测算相关
		api.POST("/calculate", handler.Calculate)
		api.POST("/calculate/batch", handler.Compare(cfg.Compare.MaxItems))
		api.POST("/scenario", handler.Scenario)

		// 假设预设
		api.GET("/presets", handler.GetPresets)
		api.GET("/presets/:id", handler.GetPreset)
	}

	log.Printf("服务启动在端口 %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
