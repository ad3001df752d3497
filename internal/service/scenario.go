package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"cppg-calc-backend/internal/cache"
	"cppg-calc-backend/internal/model"
)

const (
	defaultMultiplierMin  = 0.5
	defaultMultiplierMax  = 1.5
	defaultMultiplierStep = 0.1

	// 网格点数上限，防止step过小拖垮响应
	maxScenarioPoints = 101
)

var (
	scenarioMu       sync.RWMutex
	scenarioTTL                     = 10 * time.Minute
	scenarioProvider cache.Provider = cache.NewInMemoryProvider()
)

// ConfigureScenarioCache 设置情景扫描结果的缓存时长
func ConfigureScenarioCache(ttl time.Duration) {
	scenarioMu.Lock()
	defer scenarioMu.Unlock()
	if ttl > 0 {
		scenarioTTL = ttl
	}
}

// SetScenarioCacheProvider 替换缓存实现，传nil则回退为内存缓存
func SetScenarioCacheProvider(p cache.Provider) {
	scenarioMu.Lock()
	defer scenarioMu.Unlock()
	if p == nil {
		scenarioProvider = cache.NewInMemoryProvider()
		return
	}
	scenarioProvider = p
}

func scenarioCacheConfig() (cache.Provider, time.Duration) {
	scenarioMu.RLock()
	defer scenarioMu.RUnlock()
	return scenarioProvider, scenarioTTL
}

// ScenarioSweep 按乘数网格做灵敏度扫描
// 返回值第二项表示结果是否来自缓存
func ScenarioSweep(req *model.ScenarioRequest) (*model.ScenarioResult, bool, error) {
	applySweepDefaults(req)

	if req.MultiplierStep <= 0 {
		return nil, false, fmt.Errorf("乘数步长必须大于0")
	}
	if req.MultiplierMax < req.MultiplierMin {
		return nil, false, fmt.Errorf("乘数上限不能小于下限")
	}

	// 浮点累加容易在边界上少算一个点，这里用计数法生成网格
	count := int(math.Floor((req.MultiplierMax-req.MultiplierMin)/req.MultiplierStep+1e-9)) + 1
	if count > maxScenarioPoints {
		return nil, false, fmt.Errorf("乘数网格过密（%d点），请增大步长", count)
	}

	provider, ttl := scenarioCacheConfig()
	key := scenarioCacheKey(req)

	var cached model.ScenarioResult
	if err := provider.Get(key, &cached); err == nil && len(cached.Points) > 0 {
		return &cached, true, nil
	}

	gains := computeGains(&req.CalculateRequest)
	if gains.TotalGainPerPerson <= 0 {
		return nil, false, &model.UndefinedRatioError{Gains: gains}
	}

	population := float64(req.Population)
	totalCost := round2(req.CostPerParticipant * population)

	result := &model.ScenarioResult{
		Base:   gains,
		CPPG:   req.CostPerParticipant / gains.TotalGainPerPerson,
		Points: make([]model.ScenarioPoint, 0, count),
	}

	for i := 0; i < count; i++ {
		multiplier := round2(req.MultiplierMin + req.MultiplierStep*float64(i))
		adjustedGain := round2(gains.TotalGainPerPerson * multiplier)

		point := model.ScenarioPoint{
			Multiplier:            multiplier,
			AdjustedGainPerPerson: adjustedGain,
			NetGain:               round2(adjustedGain*population) - totalCost,
		}
		if adjustedGain > 0 {
			cppg := req.CostPerParticipant / adjustedGain
			point.AdjustedCPPG = &cppg
			if req.CostPerParticipant > 0 {
				roi := 1 / cppg
				point.AdjustedROI = &roi
			}
		}
		result.Points = append(result.Points, point)
	}

	if err := provider.Set(key, result, ttl); err != nil {
		fmt.Printf("写入情景扫描缓存失败: %v\n", err)
	}
	return result, false, nil
}

func applySweepDefaults(req *model.ScenarioRequest) {
	if req.MultiplierMin == 0 && req.MultiplierMax == 0 {
		req.MultiplierMin = defaultMultiplierMin
		req.MultiplierMax = defaultMultiplierMax
	}
	if req.MultiplierStep == 0 {
		req.MultiplierStep = defaultMultiplierStep
	}
}

// scenarioCacheKey 请求内容哈希作为缓存键
func scenarioCacheKey(req *model.ScenarioRequest) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return "scenario:" + hex.EncodeToString(sum[:16])
}
