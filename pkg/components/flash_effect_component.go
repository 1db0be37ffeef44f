package components

// FlashEffectComponent 闪烁效果组件
// 虫子受击但未死亡时短暂变暗，持续时间结束后由 FlashEffectSystem 移除
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已经过的时间（秒）
	Elapsed float64

	// Intensity 闪烁强度（0.0 - 1.0）
	// 渲染时 alpha = 1 - Intensity/2
	Intensity float64

	// IsActive 是否激活（用于临时禁用效果）
	IsActive bool
}
