package catalog

// Feature 平台功能定义
type Feature struct {
	Name        string `json:"name"`
	MinTier     Tier   `json:"min_tier"`
	Description string `json:"description"`
}

// 功能目录，进程启动时构建一次，之后只读
var features = []Feature{
	{Name: "marketplace_browse", MinTier: TierGhost, Description: "浏览市场作品"},
	{Name: "pattern_capture", MinTier: TierSeedling, Description: "捕获并保存模式片段"},
	{Name: "marketplace_sell", MinTier: TierSeedling, Description: "发布可售卖作品"},
	{Name: "lineage_publish", MinTier: TierSapling, Description: "基于他人作品发布衍生作品"},
	{Name: "pattern_recognition", MinTier: TierSapling, Description: "模式识别分析"},
	{Name: "revenue_dashboard", MinTier: TierSapling, Description: "收益看板"},
	{Name: "advanced_analytics", MinTier: TierTree, Description: "高级数据分析"},
	{Name: "bulk_export", MinTier: TierTree, Description: "批量导出作品与数据"},
	{Name: "priority_support", MinTier: TierTree, Description: "优先支持通道"},
	{Name: "network_governance", MinTier: TierForest, Description: "参与平台治理"},
	{Name: "featured_placement", MinTier: TierForest, Description: "首页推荐位"},
}

// AllFeatures 返回完整功能目录
func AllFeatures() []Feature {
	return features
}

// FindFeature 按名称查找功能
func FindFeature(name string) (Feature, bool) {
	for _, f := range features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// FeaturesForTier 等级可用的功能名集合（含所有更低等级解锁的功能）
func FeaturesForTier(tier Tier) []string {
	rank := TierRank(tier)
	names := make([]string, 0, len(features))
	for _, f := range features {
		if TierRank(f.MinTier) <= rank {
			names = append(names, f.Name)
		}
	}
	return names
}
