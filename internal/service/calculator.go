package service

import (
	"math"

	"cppg-calc-backend/internal/model"
)

// 百分点口径换算为比例
const percentScale = 100.0

// Calculate 计算成本效益比（CPPG）
// 纯函数：同样的输入必然得到同样的输出，无共享状态，可并发调用
// 输入范围由绑定层约束，这里信任调用方，不再做校验
func Calculate(req *model.CalculateRequest) (*model.CalculateResult, error) {
	gains := computeGains(req)

	// 人均总收益非正时比值没有意义，返回带收益分解的类型化错误而不是0或无穷
	if gains.TotalGainPerPerson <= 0 {
		return nil, &model.UndefinedRatioError{Gains: gains}
	}

	cppg := req.CostPerParticipant / gains.TotalGainPerPerson

	// 成本为0时 ROI=1/cppg 无定义，返回 nil 交由前端单独展示
	var roi *float64
	if req.CostPerParticipant > 0 {
		r := 1 / cppg
		roi = &r
	}

	population := float64(req.Population)
	totalCost := round2(req.CostPerParticipant * population)
	totalGain := round2(gains.TotalGainPerPerson * population)
	netGain := totalGain - totalCost

	multiplier := req.ScenarioMultiplier
	adjustedGain := round2(gains.TotalGainPerPerson * multiplier)

	var adjustedCPPG, adjustedROI *float64
	if adjustedGain > 0 {
		ac := req.CostPerParticipant / adjustedGain
		adjustedCPPG = &ac
		if req.CostPerParticipant > 0 {
			ar := 1 / ac
			adjustedROI = &ar
		}
	}

	return &model.CalculateResult{
		GainBreakdown: gains,
		CPPG:          cppg,
		ROI:           roi,
		TotalCost:     totalCost,
		TotalGain:     totalGain,
		NetGain:       netGain,

		ScenarioMultiplier:    multiplier,
		AdjustedGainPerPerson: adjustedGain,
		AdjustedCPPG:          adjustedCPPG,
		AdjustedROI:           adjustedROI,
	}, nil
}

// computeGains 把近端效果指标换算为人均终身收益（现值$）
// 三项独立相加：数学成绩（带衰减）、高中毕业率、大学入学率
func computeGains(req *model.CalculateRequest) model.GainBreakdown {
	gainFromMath := round2(req.DeltaMathSD * req.MathGainPerSD * (1 - req.FadeoutFactor))
	gainFromGradRate := round2((req.DeltaGradRatePP / percentScale) * req.EarningsGainHSVsDropout)
	gainFromCollege := round2((req.DeltaCollegeEnrollPP / percentScale) * req.EarningsGainCollegeVsHS)

	return model.GainBreakdown{
		GainFromMath:       gainFromMath,
		GainFromGradRate:   gainFromGradRate,
		GainFromCollege:    gainFromCollege,
		TotalGainPerPerson: round2(gainFromMath + gainFromGradRate + gainFromCollege),
	}
}

// round2 金额保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
