package components

// HealthComponent 存储实体的生命值信息
// 用于虫子、Boss 等可被点击伤害的实体
//
// 生命值只减不增，CurrentHealth <= 0 时实体必须被移除
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// Ratio 当前生命值占比（0-1）
func (h *HealthComponent) Ratio() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	return float64(h.CurrentHealth) / float64(h.MaxHealth)
}
