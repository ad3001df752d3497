package model

// ScenarioRequest 情景扫描请求
// 在基础测算之上按乘数网格逐点重算，缺省区间 0.5-1.5、步长 0.1
type ScenarioRequest struct {
	CalculateRequest

	MultiplierMin  float64 `json:"multiplier_min" binding:"gte=0"`
	MultiplierMax  float64 `json:"multiplier_max" binding:"gte=0"`
	MultiplierStep float64 `json:"multiplier_step" binding:"gte=0"`
}

// ScenarioPoint 单个乘数点的结果
type ScenarioPoint struct {
	Multiplier            float64  `json:"multiplier"`
	AdjustedGainPerPerson float64  `json:"adjusted_gain_per_person"`
	AdjustedCPPG          *float64 `json:"adjusted_cppg"`
	AdjustedROI           *float64 `json:"adjusted_roi"`
	NetGain               float64  `json:"net_gain"` // 该情景下的项目净收益
}

// ScenarioResult 情景扫描结果
type ScenarioResult struct {
	Base   GainBreakdown   `json:"base"`   // 未缩放的收益分解
	CPPG   float64         `json:"cppg"`   // 乘数=1时的基准CPPG
	Points []ScenarioPoint `json:"points"` // 按乘数升序
}

// ComparisonItem 单个待比较的干预方案
type ComparisonItem struct {
	Name    string           `json:"name" binding:"required"`
	Request CalculateRequest `json:"request" binding:"required"`
}

// CompareRequest 批量比较请求
type CompareRequest struct {
	Interventions []ComparisonItem `json:"interventions" binding:"required"`
}

// ComparisonResult 单个方案的比较结果
// 比值无定义时 Result 为空，Error 给出原因，收益分解单独返回
type ComparisonResult struct {
	Name   string           `json:"name"`
	Rank   int              `json:"rank,omitempty"` // 按CPPG升序，无定义的方案不参与排名
	Result *CalculateResult `json:"result,omitempty"`
	Gains  *GainBreakdown   `json:"gains,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// CompareResponse 批量比较响应
type CompareResponse struct {
	Results []ComparisonResult `json:"results"`
}
