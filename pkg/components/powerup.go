package components

import "github.com/decker502/arcade/pkg/types"

// PowerUpComponent 掉落的道具
// 道具缓慢下落，寿命由 LifetimeComponent 管理
type PowerUpComponent struct {
	Kind types.PowerUpKind
}
