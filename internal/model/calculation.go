package model

import "fmt"

// CalculateRequest 测算请求
// 货币字段单位为美元（主单位），百分比字段为 0-100 口径，比率字段为 0-1 口径
type CalculateRequest struct {
	CostPerParticipant float64 `json:"cost_per_participant" binding:"gte=0"` // 人均干预成本（$）
	Population         int     `json:"population" binding:"required,gt=0"`   // 参与人数

	// 近端效果指标（每参与者）
	DeltaMathSD          float64 `json:"delta_math_sd"`           // 数学成绩提升（标准差）
	DeltaGradRatePP      float64 `json:"delta_grad_rate_pp"`      // 高中毕业率提升（百分点）
	DeltaCollegeEnrollPP float64 `json:"delta_college_enroll_pp"` // 大学入学率提升（百分点）

	// 换算假设（终身收益现值，$）
	DiscountRate            float64 `json:"discount_rate" binding:"gte=0,lt=1"`          // 实际年贴现率（0-1），暂未参与计算
	MathGainPerSD           float64 `json:"math_gain_per_sd" binding:"gte=0"`            // 每1SD数学提升对应的终身收益
	EarningsGainHSVsDropout float64 `json:"earnings_gain_hs_vs_dropout" binding:"gte=0"` // 高中毕业 vs 辍学的终身收益差
	EarningsGainCollegeVsHS float64 `json:"earnings_gain_college_vs_hs" binding:"gte=0"` // 本科 vs 高中的终身收益差
	FadeoutFactor           float64 `json:"fadeout_factor" binding:"gte=0,lte=1"`        // 测验分数效应衰减系数（0=不衰减，1=完全衰减）

	// 情景分析乘数，缺省按 1.0 处理
	ScenarioMultiplier float64 `json:"scenario_multiplier" binding:"gte=0"`

	// 项目背景信息，仅随表单收集，暂未参与计算
	TargetAge         int     `json:"target_age" binding:"gte=0,lte=65"`
	AvgMotivation     int     `json:"avg_motivation" binding:"gte=0,lte=5"`
	EngagementHoursPW float64 `json:"engagement_hours_per_week" binding:"gte=0"`
	PersistenceMonths int     `json:"persistence_months" binding:"gte=0"`
}

// GainBreakdown 人均收益分解（$）
type GainBreakdown struct {
	GainFromMath       float64 `json:"gain_from_math"`        // 数学成绩贡献
	GainFromGradRate   float64 `json:"gain_from_grad_rate"`   // 毕业率贡献
	GainFromCollege    float64 `json:"gain_from_college"`     // 大学入学贡献
	TotalGainPerPerson float64 `json:"total_gain_per_person"` // 三项之和
}

// CalculateResult 测算结果
// CPPG/ROI 为比值，不做四舍五入；货币金额保留两位小数
type CalculateResult struct {
	GainBreakdown

	CPPG float64  `json:"cppg"` // 每获得$1终身收益所需成本，越低越好
	ROI  *float64 `json:"roi"`  // 每$1投入带来的收益倍数；成本为0时无定义，返回null

	TotalCost float64 `json:"total_cost"` // 项目总成本
	TotalGain float64 `json:"total_gain"` // 总终身收益
	NetGain   float64 `json:"net_gain"`   // 净收益 = 总收益 - 总成本

	// 情景分析（按乘数缩放人均收益后重算）
	ScenarioMultiplier    float64  `json:"scenario_multiplier"`
	AdjustedGainPerPerson float64  `json:"adjusted_gain_per_person"`
	AdjustedCPPG          *float64 `json:"adjusted_cppg"` // 缩放后收益非正时无定义
	AdjustedROI           *float64 `json:"adjusted_roi"`
}

// UndefinedRatioError 比值无定义错误
// 人均总收益非正时成本效益比没有意义，但收益分解仍需返回给前端展示
type UndefinedRatioError struct {
	Gains GainBreakdown
}

func (e *UndefinedRatioError) Error() string {
	return fmt.Sprintf("人均终身收益为零或负值（%.2f），无法计算成本效益比，请调整输入", e.Gains.TotalGainPerPerson)
}
