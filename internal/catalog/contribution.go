package catalog

import "sort"

// 贡献类型对应的积分
var contributionPoints = map[string]int64{
	"creation_published":    10, // 发布作品
	"marketplace_sale":      5,  // 市场成交
	"downstream_derivative": 20, // 作品被衍生并产生收益
	"bug_report":            2,  // 缺陷报告
	"referral":              15, // 推荐新建造者
}

// ContributionPoints 贡献类型的积分值
func ContributionPoints(contributionType string) (int64, bool) {
	points, ok := contributionPoints[contributionType]
	return points, ok
}

// ValidContributionTypes 按字典序返回所有合法贡献类型
func ValidContributionTypes() []string {
	types := make([]string, 0, len(contributionPoints))
	for t := range contributionPoints {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
