package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cppg-calc-backend/internal/model"
)

func TestCompareRanking(t *testing.T) {
	expensive := *baseRequest()
	expensive.CostPerParticipant = 5000

	cheap := *baseRequest()
	cheap.CostPerParticipant = 500

	resp, err := CompareInterventions(&model.CompareRequest{
		Interventions: []model.ComparisonItem{
			{Name: "方案A", Request: expensive},
			{Name: "方案B", Request: cheap},
		},
	}, 20)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	// CPPG低者排第一
	assert.Equal(t, "方案B", resp.Results[0].Name)
	assert.Equal(t, 1, resp.Results[0].Rank)
	assert.Equal(t, "方案A", resp.Results[1].Name)
	assert.Equal(t, 2, resp.Results[1].Rank)
	require.NotNil(t, resp.Results[0].Result)
	assert.Less(t, resp.Results[0].Result.CPPG, resp.Results[1].Result.CPPG)
}

func TestCompareUndefinedLast(t *testing.T) {
	ok := *baseRequest()

	noEffect := *baseRequest()
	noEffect.DeltaMathSD = 0
	noEffect.DeltaGradRatePP = 0
	noEffect.DeltaCollegeEnrollPP = 0

	resp, err := CompareInterventions(&model.CompareRequest{
		Interventions: []model.ComparisonItem{
			{Name: "无效果", Request: noEffect},
			{Name: "有效果", Request: ok},
		},
	}, 20)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "有效果", resp.Results[0].Name)
	assert.Equal(t, 1, resp.Results[0].Rank)

	// 无定义的方案不参与排名，带原因和收益分解
	last := resp.Results[1]
	assert.Equal(t, "无效果", last.Name)
	assert.Zero(t, last.Rank)
	assert.Nil(t, last.Result)
	require.NotNil(t, last.Gains)
	assert.Zero(t, last.Gains.TotalGainPerPerson)
	assert.NotEmpty(t, last.Error)
}

func TestCompareDefaultMultiplier(t *testing.T) {
	req := *baseRequest()
	req.ScenarioMultiplier = 0 // 缺省应按1.0处理

	resp, err := CompareInterventions(&model.CompareRequest{
		Interventions: []model.ComparisonItem{{Name: "默认乘数", Request: req}},
	}, 20)
	require.NoError(t, err)
	require.NotNil(t, resp.Results[0].Result)
	assert.InDelta(t, 1.0, resp.Results[0].Result.ScenarioMultiplier, 1e-9)
}

func TestCompareLimits(t *testing.T) {
	_, err := CompareInterventions(&model.CompareRequest{}, 20)
	assert.Error(t, err, "空列表应报错")

	items := make([]model.ComparisonItem, 3)
	for i := range items {
		items[i] = model.ComparisonItem{Name: "x", Request: *baseRequest()}
	}
	_, err = CompareInterventions(&model.CompareRequest{Interventions: items}, 2)
	assert.Error(t, err, "超出数量上限应报错")
}
