package components

// HitLayer 点击检测优先级，数值越小越先检测
type HitLayer int

const (
	// LayerPowerUp 道具最先检测
	LayerPowerUp HitLayer = iota
	// LayerBoss Boss 次之
	LayerBoss
	// LayerEntity 普通实体（按创建时间倒序）
	LayerEntity
)

// ClickableComponent 标记实体可以被指针点击
// 点击区域是以实体位置为圆心、Radius 为半径的圆（严格小于）
type ClickableComponent struct {
	Radius    float64  // 命中半径(像素)
	Layer     HitLayer // 检测优先级
	IsEnabled bool     // 是否可以被点击(用于禁用已结算的对象)
}
