package components

import (
	"image/color"

	"github.com/decker502/arcade/pkg/types"
)

// BugComponent 虫子的类别数据
// 位置、速度、生命值分别由 PositionComponent、VelocityComponent、HealthComponent 保存
type BugComponent struct {
	Category   types.BugCategory
	Size       float64 // 半径（像素），同时是命中半径
	Color      color.RGBA
	ScoreValue int   // 基础分（陷阱为负）
	Trait      Trait // 特殊行为，普通类别为 nil
}

// IsTrap 是否陷阱虫
func (b *BugComponent) IsTrap() bool {
	_, ok := b.Trait.(*TrapTrait)
	return ok
}
