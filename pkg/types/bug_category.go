package types

import "fmt"

// BugCategory 虫子类别
type BugCategory int

const (
	// BugUnknown 未知类别
	BugUnknown BugCategory = iota
	BugBasic
	BugFast
	BugTank
	// BugSplitter 被消灭时分裂为两只小虫
	BugSplitter
	// BugTeleporter 定时随机瞬移
	BugTeleporter
	// BugBomber 被消灭时伤害周围的虫子
	BugBomber
	// BugGolden 额外奖励分
	BugGolden
	// BugTrap 陷阱：点击会扣分并损失一条命
	BugTrap
)

var bugCategoryNames = map[BugCategory]string{
	BugBasic:      "basic",
	BugFast:       "fast",
	BugTank:       "tank",
	BugSplitter:   "splitter",
	BugTeleporter: "teleporter",
	BugBomber:     "bomber",
	BugGolden:     "golden",
	BugTrap:       "trap",
}

// String 返回类别名（与配置文件中的名称一致）
func (c BugCategory) String() string {
	if name, ok := bugCategoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseBugCategory 从配置名称解析类别
func ParseBugCategory(name string) (BugCategory, error) {
	for c, n := range bugCategoryNames {
		if n == name {
			return c, nil
		}
	}
	return BugUnknown, fmt.Errorf("unknown bug category %q", name)
}
