package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 服务配置
type Config struct {
	// HTTP服务配置
	Server struct {
		Port        string   `json:"port"`
		CORSOrigins []string `json:"cors_origins"` // 允许的前端来源
	} `json:"server"`

	// 缓存配置
	Cache struct {
		RedisAddr   string        `json:"redis_addr"`   // 为空时使用内存缓存
		ScenarioTTL time.Duration `json:"scenario_ttl"` // 情景扫描结果缓存时长
		PresetTTL   time.Duration `json:"preset_ttl"`   // 假设参数预设缓存时长
	} `json:"cache"`

	// 预设参数库配置
	Presets struct {
		BankPath string `json:"bank_path"` // 内置SQLite参数库路径，为空时仅用内置默认值
	} `json:"presets"`

	// 批量比较配置
	Compare struct {
		MaxItems int `json:"max_items"` // 单次比较的方案数上限
	} `json:"compare"`
}

// Load 从环境变量读取服务配置
func Load() *Config {
	cfg := &Config{}

	cfg.Server.Port = getEnvString("PORT", "8080")
	cfg.Server.CORSOrigins = getEnvStringList("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"})

	cfg.Cache.RedisAddr = getEnvString("REDIS_ADDR", "")
	cfg.Cache.ScenarioTTL = getEnvDuration("SCENARIO_CACHE_TTL", 10*time.Minute)
	cfg.Cache.PresetTTL = getEnvDuration("PRESET_CACHE_TTL", 24*time.Hour)

	cfg.Presets.BankPath = getEnvString("PRESET_BANK_PATH", "")

	cfg.Compare.MaxItems = getEnvInt("COMPARE_MAX_ITEMS", 20)

	return cfg
}

// 辅助函数
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvStringList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
