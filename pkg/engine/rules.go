package engine

import (
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/types"
)

// Key 宿主无关的按键名，如 "space"、"p"、"1"
type Key string

const (
	KeySpace  Key = "space"
	KeyEscape Key = "escape"
	KeyEnter  Key = "enter"
	KeyR      Key = "r"
	KeyP      Key = "p"
	KeyS      Key = "s"
)

// Rules 一个具体游戏的规则
//
// 引擎在固定的步骤中调用这些方法，所有方法都在同一个 goroutine 中执行，
// 因此规则实现无需加锁。Advance/Spawn/Pointer/Key 只在会话运行时调用。
type Rules interface {
	// Name 游戏 ID，同时用作存储中的对象名
	Name() string
	// Start 新会话开始（或从快照继续），世界已清空
	Start(w *World)
	// Advance 推进实体（移动、阻尼、重力、逃逸检查）
	Advance(w *World, dt float64)
	// Spawn 按时间生成新实体
	Spawn(w *World, dt float64)
	// Pointer 处理一次点击
	Pointer(w *World, x, y float64)
	// PointerMove 处理指针移动
	PointerMove(w *World, x, y float64)
	// Key 处理一次按键
	Key(w *World, key Key)
	// Draw 绘制实体（在背景之上、粒子之下，受屏幕震动影响）
	Draw(w *World, c types.Canvas)
	// DrawHUD 绘制界面文字（最上层，不受屏幕震动影响）
	DrawHUD(w *World, c types.Canvas)
}

// EffectExpirer 可选接口：限时效果到期时收到通知
type EffectExpirer interface {
	EffectExpired(w *World, name string)
}

// Resetter 可选接口：会话重置时清理规则自身的状态
type Resetter interface {
	Reset(w *World)
}

// StatusSink 宿主的分数/状态显示（浏览器中是页面元素）
type StatusSink interface {
	SetScore(score int)
	SetHighScore(score int)
	SetStatus(text string)
}

// Host 宿主提供的外部能力，任何字段都可以为 nil，此时对应功能变为空操作
type Host struct {
	Status   StatusSink
	Store    game.Store
	Tones    game.ToneGenerator
	Settings *game.SettingsManager
}
