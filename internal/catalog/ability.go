package catalog

// AccessType 能力访问类型，封闭枚举
type AccessType int

const (
	AccessStandalone      AccessType = iota // 独立运行，不依赖等级和网络
	AccessNetworkRequired                   // 必须联网且达到最低等级
	AccessNetworkEnhanced                   // 联网增强，离线/低等级时降级运行
)

// String 访问类型名称
func (t AccessType) String() string {
	switch t {
	case AccessStandalone:
		return "standalone"
	case AccessNetworkRequired:
		return "network_required"
	case AccessNetworkEnhanced:
		return "network_enhanced"
	default:
		return "unknown"
	}
}

// Ability 能力定义
type Ability struct {
	Name             string     `json:"name"`
	Access           AccessType `json:"access"`
	MinTier          Tier       `json:"min_tier"`           // required/enhanced 使用
	OfflinePowerPct  int        `json:"offline_power_pct"`  // 离线基础算力
	DegradedBehavior string     `json:"degraded_behavior"`  // 降级运行方式
	NetworkFeatures  []string   `json:"network_features"`   // 联网时增强的功能
}

// 能力目录，进程启动时构建一次，之后只读
var abilities = []Ability{
	{
		Name:            "capture_clip",
		Access:          AccessStandalone,
		OfflinePowerPct: 100,
	},
	{
		Name:            "local_notes",
		Access:          AccessStandalone,
		OfflinePowerPct: 100,
	},
	{
		Name:             "pattern_recognition",
		Access:           AccessNetworkEnhanced,
		MinTier:          TierSapling,
		OfflinePowerPct:  100,
		DegradedBehavior: "仅使用本地关键词规则，跳过跨作品关联分析",
		NetworkFeatures:  []string{"cross_creation_correlation", "trend_detection"},
	},
	{
		Name:             "memory_search",
		Access:           AccessNetworkEnhanced,
		MinTier:          TierSeedling,
		OfflinePowerPct:  70,
		DegradedBehavior: "只检索本地缓存的记忆片段",
		NetworkFeatures:  []string{"full_archive_search"},
	},
	{
		Name:    "assistant_chat",
		Access:  AccessNetworkRequired,
		MinTier: TierSeedling,
	},
	{
		Name:    "marketplace_publish",
		Access:  AccessNetworkRequired,
		MinTier: TierSeedling,
	},
	{
		Name:    "lineage_graph_edit",
		Access:  AccessNetworkRequired,
		MinTier: TierSapling,
	},
}

// AllAbilities 返回完整能力目录
func AllAbilities() []Ability {
	return abilities
}

// FindAbility 按名称查找能力
func FindAbility(name string) (Ability, bool) {
	for _, a := range abilities {
		if a.Name == name {
			return a, true
		}
	}
	return Ability{}, false
}
