package components

// LifeState 实体生命阶段
type LifeState int

const (
	// LifeAlive 存活，参与移动与点击检测
	LifeAlive LifeState = iota
	// LifeDying 已被击杀，等待本帧结束时清理
	LifeDying
	// LifeRemoved 已移除（实体已被标记删除）
	LifeRemoved
)

func (s LifeState) String() string {
	switch s {
	case LifeAlive:
		return "alive"
	case LifeDying:
		return "dying"
	case LifeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// LifeStateComponent 记录实体所处的生命阶段
// 连锁反应（炸弹虫）依赖它避免同一只虫子被结算两次
type LifeStateComponent struct {
	State LifeState
}
