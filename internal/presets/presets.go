// Package presets 提供换算假设的预设目录：
// 内置默认值 + 可选的SQLite参数库，结果走缓存，支持关键词检索与强制刷新
package presets

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cppg-calc-backend/internal/cache"
	"cppg-calc-backend/pkg/presetbank"
)

const presetCacheKey = "presets:catalog"

var (
	mu            sync.RWMutex
	bankPath      string
	cacheTTL                     = 24 * time.Hour
	cacheProvider cache.Provider = cache.NewInMemoryProvider()
)

// Configure 设置参数库路径与缓存时长
func Configure(path string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	bankPath = path
	if ttl > 0 {
		cacheTTL = ttl
	}
}

// SetCacheProvider 替换缓存实现，传nil则回退为内存缓存
func SetCacheProvider(p cache.Provider) {
	mu.Lock()
	defer mu.Unlock()
	if p == nil {
		cacheProvider = cache.NewInMemoryProvider()
		return
	}
	cacheProvider = p
}

func currentConfig() (string, time.Duration, cache.Provider) {
	mu.RLock()
	defer mu.RUnlock()
	return bankPath, cacheTTL, cacheProvider
}

// GetPresets 获取预设目录
// 优先级：缓存 → SQLite参数库 → 内置默认值；参数库加载失败时降级为内置值
func GetPresets() ([]presetbank.Preset, error) {
	return getPresets(false)
}

// RefreshPresetCache 绕过缓存重新加载并回填
func RefreshPresetCache() ([]presetbank.Preset, error) {
	return getPresets(true)
}

func getPresets(refresh bool) ([]presetbank.Preset, error) {
	path, ttl, provider := currentConfig()

	if !refresh {
		var cached []presetbank.Preset
		if err := provider.Get(presetCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	list := loadPresets(path)
	if len(list) == 0 {
		return nil, fmt.Errorf("预设目录为空")
	}

	if err := provider.Set(presetCacheKey, list, ttl); err != nil {
		fmt.Printf("写入预设缓存失败: %v\n", err)
	}
	return list, nil
}

// loadPresets 合并参数库与内置默认值，参数库中同ID的记录优先
func loadPresets(path string) []presetbank.Preset {
	merged := map[string]presetbank.Preset{}
	var order []string

	for _, p := range BuiltinPresets() {
		merged[p.ID] = p
		order = append(order, p.ID)
	}

	if path != "" {
		bankList, err := presetbank.Load(path)
		if err != nil {
			fmt.Printf("加载预设参数库失败，使用内置默认值: %v\n", err)
		} else {
			for _, p := range bankList {
				if _, exists := merged[p.ID]; !exists {
					order = append(order, p.ID)
				}
				merged[p.ID] = p
			}
			fmt.Printf("参数库贡献 %d 组预设\n", len(bankList))
		}
	}

	out := make([]presetbank.Preset, 0, len(order))
	for _, id := range order {
		out = append(out, merged[id])
	}
	return out
}

// SearchPresetsWithRefresh 按关键词检索预设，返回结果与是否命中缓存
func SearchPresetsWithRefresh(keyword string, refresh bool) ([]presetbank.Preset, bool) {
	fromCache := !refresh
	list, err := getPresets(refresh)
	if err != nil {
		return nil, false
	}

	if keyword == "" {
		return list, fromCache
	}

	keyword = strings.ToLower(keyword)
	var result []presetbank.Preset
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.ID), keyword) ||
			strings.Contains(strings.ToLower(p.Name), keyword) ||
			strings.Contains(strings.ToLower(p.Source), keyword) {
			result = append(result, p)
		}
	}
	return result, fromCache
}

// GetPreset 按ID获取单组预设
func GetPreset(id string) (*presetbank.Preset, error) {
	list, err := GetPresets()
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("预设不存在: %s", id)
}

// BuiltinPresets 内置默认预设
// baseline 的各项取值即前端表单的初始值
func BuiltinPresets() []presetbank.Preset {
	return []presetbank.Preset{
		{
			ID:                      "baseline",
			Name:                    "基准假设",
			Source:                  "文献综合默认值",
			Year:                    2023,
			MathGainPerSD:           80000,
			EarningsGainHSVsDropout: 300000,
			EarningsGainCollegeVsHS: 600000,
			FadeoutFactor:           0.3,
			DiscountRate:            0.03,
			Notes:                   "表单默认值：1SD数学=8万，高中毕业差=30万，本科差=60万",
		},
		{
			ID:                      "conservative",
			Name:                    "保守假设",
			Source:                  "取文献区间下限",
			Year:                    2023,
			MathGainPerSD:           50000,
			EarningsGainHSVsDropout: 200000,
			EarningsGainCollegeVsHS: 400000,
			FadeoutFactor:           0.5,
			DiscountRate:            0.05,
			Notes:                   "衰减取0.5，贴现率取5%",
		},
		{
			ID:                      "optimistic",
			Name:                    "乐观假设",
			Source:                  "取文献区间上限",
			Year:                    2023,
			MathGainPerSD:           110000,
			EarningsGainHSVsDropout: 400000,
			EarningsGainCollegeVsHS: 800000,
			FadeoutFactor:           0.15,
			DiscountRate:            0.02,
			Notes:                   "衰减取0.15，贴现率取2%",
		},
	}
}
