package service

import (
	"errors"
	"fmt"
	"sort"

	"cppg-calc-backend/internal/model"
)

// CompareInterventions 批量测算多个干预方案并按CPPG升序排名
// 同步逐个计算；比值无定义的方案不参与排名，排在结果末尾
func CompareInterventions(req *model.CompareRequest, maxItems int) (*model.CompareResponse, error) {
	if len(req.Interventions) == 0 {
		return nil, fmt.Errorf("请提供至少一个干预方案")
	}
	if maxItems > 0 && len(req.Interventions) > maxItems {
		return nil, fmt.Errorf("单次最多比较 %d 个方案", maxItems)
	}

	defined := make([]model.ComparisonResult, 0, len(req.Interventions))
	var undefined []model.ComparisonResult

	for i := range req.Interventions {
		item := &req.Interventions[i]
		if item.Request.ScenarioMultiplier == 0 {
			item.Request.ScenarioMultiplier = 1.0
		}

		result, err := Calculate(&item.Request)
		if err != nil {
			var undefErr *model.UndefinedRatioError
			if errors.As(err, &undefErr) {
				gains := undefErr.Gains
				undefined = append(undefined, model.ComparisonResult{
					Name:  item.Name,
					Gains: &gains,
					Error: undefErr.Error(),
				})
				continue
			}
			return nil, err
		}

		defined = append(defined, model.ComparisonResult{
			Name:   item.Name,
			Result: result,
		})
	}

	// CPPG越低越好
	sort.SliceStable(defined, func(i, j int) bool {
		return defined[i].Result.CPPG < defined[j].Result.CPPG
	})
	for i := range defined {
		defined[i].Rank = i + 1
	}

	return &model.CompareResponse{
		Results: append(defined, undefined...),
	}, nil
}
