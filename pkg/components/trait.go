package components

// Trait 虫子的特殊行为
// 封闭接口：只有本包定义的变体实现它，反应逻辑通过 type switch 分派。
// 普通类别（basic/fast/tank）的 Trait 为 nil。
type Trait interface {
	isTrait()
}

// SplitTrait 被消灭时在原地分裂出子虫
type SplitTrait struct {
	ChildScale float64 // 子虫相对父虫的尺寸比例
	Children   int     // 子虫数量
}

// ExplodeTrait 被消灭时对半径内其他虫子造成伤害（可连锁）
type ExplodeTrait struct {
	Radius float64
	Damage int
}

// TeleportTrait 每隔 Interval 秒瞬移到随机位置
type TeleportTrait struct {
	Interval float64
	Timer    float64
}

// GoldenTrait 额外奖励分
type GoldenTrait struct {
	Bonus int
}

// TrapTrait 陷阱：点击扣分并损失一条命，逃逸不扣命
type TrapTrait struct {
	Penalty int
}

func (*SplitTrait) isTrait()    {}
func (*ExplodeTrait) isTrait()  {}
func (*TeleportTrait) isTrait() {}
func (*GoldenTrait) isTrait()   {}
func (*TrapTrait) isTrait()     {}
