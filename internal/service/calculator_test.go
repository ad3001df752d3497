package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cppg-calc-backend/internal/model"
)

// baseRequest 表单默认值组成的基准请求
func baseRequest() *model.CalculateRequest {
	return &model.CalculateRequest{
		CostPerParticipant:      1000,
		Population:              1000,
		DeltaMathSD:             0.1,
		DeltaGradRatePP:         5,
		DeltaCollegeEnrollPP:    3,
		DiscountRate:            0.03,
		MathGainPerSD:           80000,
		EarningsGainHSVsDropout: 300000,
		EarningsGainCollegeVsHS: 600000,
		FadeoutFactor:           0.3,
		ScenarioMultiplier:      1.0,
	}
}

func TestCalculateBaseline(t *testing.T) {
	result, err := Calculate(baseRequest())
	require.NoError(t, err)

	// 0.1*80000*0.7 + 0.05*300000 + 0.03*600000
	assert.InDelta(t, 5600, result.GainFromMath, 1e-9)
	assert.InDelta(t, 15000, result.GainFromGradRate, 1e-9)
	assert.InDelta(t, 18000, result.GainFromCollege, 1e-9)
	assert.InDelta(t, 38600, result.TotalGainPerPerson, 1e-9)

	assert.InDelta(t, 1000.0/38600.0, result.CPPG, 1e-9)
	require.NotNil(t, result.ROI)
	assert.InDelta(t, 38.6, *result.ROI, 1e-9)

	assert.InDelta(t, 1_000_000, result.TotalCost, 1e-6)
	assert.InDelta(t, 38_600_000, result.TotalGain, 1e-6)
	assert.InDelta(t, 37_600_000, result.NetGain, 1e-6)

	// 乘数1.0时情景结果等于基准
	require.NotNil(t, result.AdjustedCPPG)
	assert.InDelta(t, result.CPPG, *result.AdjustedCPPG, 1e-12)
}

func TestCalculateInverseRelation(t *testing.T) {
	req := baseRequest()
	req.CostPerParticipant = 2345.67

	result, err := Calculate(req)
	require.NoError(t, err)

	// cppg * 人均总收益 ≈ 人均成本
	assert.InDelta(t, req.CostPerParticipant, result.CPPG*result.TotalGainPerPerson, 1e-6)

	require.NotNil(t, result.ROI)
	assert.InDelta(t, 1/result.CPPG, *result.ROI, 1e-9)
}

func TestCalculateNetGainIdentity(t *testing.T) {
	req := baseRequest()
	req.Population = 733
	req.CostPerParticipant = 1234.56

	result, err := Calculate(req)
	require.NoError(t, err)

	// 净收益按定义恒等于总收益减总成本
	assert.Equal(t, result.TotalGain-result.TotalCost, result.NetGain)
}

func TestCalculateMonotonicity(t *testing.T) {
	prev := 0.0
	for _, sd := range []float64{0, 0.05, 0.1, 0.5, 1, 2} {
		req := baseRequest()
		req.DeltaMathSD = sd

		result, err := Calculate(req)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.TotalGainPerPerson, prev, "效果量增大时人均收益不得减少")
		prev = result.TotalGainPerPerson
	}
}

func TestCalculateFullFadeout(t *testing.T) {
	req := baseRequest()
	req.FadeoutFactor = 1
	req.DeltaMathSD = 3.5
	req.MathGainPerSD = 999999

	result, err := Calculate(req)
	require.NoError(t, err)

	// 完全衰减时数学成绩贡献恒为0
	assert.Zero(t, result.GainFromMath)
	assert.InDelta(t, 33000, result.TotalGainPerPerson, 1e-9)
}

func TestCalculateUndefinedRatio(t *testing.T) {
	req := baseRequest()
	req.DeltaMathSD = 0
	req.DeltaGradRatePP = 0
	req.DeltaCollegeEnrollPP = 0

	_, err := Calculate(req)
	require.Error(t, err)

	var undefErr *model.UndefinedRatioError
	require.True(t, errors.As(err, &undefErr))
	assert.Zero(t, undefErr.Gains.GainFromMath)
	assert.Zero(t, undefErr.Gains.TotalGainPerPerson)
}

func TestCalculateNegativeTotalGain(t *testing.T) {
	req := baseRequest()
	req.DeltaMathSD = 0
	req.DeltaCollegeEnrollPP = 0
	req.DeltaGradRatePP = -5

	_, err := Calculate(req)
	require.Error(t, err)

	var undefErr *model.UndefinedRatioError
	require.True(t, errors.As(err, &undefErr))
	// 失败时仍携带收益分解供展示
	assert.InDelta(t, -15000, undefErr.Gains.GainFromGradRate, 1e-9)
	assert.InDelta(t, -15000, undefErr.Gains.TotalGainPerPerson, 1e-9)
}

func TestCalculateZeroCost(t *testing.T) {
	req := baseRequest()
	req.CostPerParticipant = 0

	result, err := Calculate(req)
	require.NoError(t, err)

	// 成本为0时CPPG为0，ROI无定义
	assert.Zero(t, result.CPPG)
	assert.Nil(t, result.ROI)
	assert.Nil(t, result.AdjustedROI)
}

func TestCalculateScenarioScaling(t *testing.T) {
	for _, m := range []float64{0.5, 0.8, 1.25, 1.5} {
		req := baseRequest()
		req.ScenarioMultiplier = m

		result, err := Calculate(req)
		require.NoError(t, err)
		require.NotNil(t, result.AdjustedCPPG)

		// 收益缩放m倍，CPPG缩放1/m倍
		assert.InDelta(t, result.CPPG/m, *result.AdjustedCPPG, 1e-6)
	}
}

func TestCalculateZeroMultiplier(t *testing.T) {
	req := baseRequest()
	req.ScenarioMultiplier = 0

	// 服务层不做缺省处理，乘数为0时情景比值无定义
	result, err := Calculate(req)
	require.NoError(t, err)
	assert.Nil(t, result.AdjustedCPPG)
	assert.Zero(t, result.AdjustedGainPerPerson)
}

func TestCalculateDiscountRateInert(t *testing.T) {
	a := baseRequest()
	b := baseRequest()
	b.DiscountRate = 0.9

	ra, err := Calculate(a)
	require.NoError(t, err)
	rb, err := Calculate(b)
	require.NoError(t, err)

	// 贴现率目前只收集不参与计算
	assert.Equal(t, ra.TotalGainPerPerson, rb.TotalGainPerPerson)
	assert.Equal(t, ra.CPPG, rb.CPPG)
}
