package scenes

import (
	"github.com/decker502/arcade/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

const (
	// WindowWidth is the logical width of the game window in pixels.
	WindowWidth = 800
	// WindowHeight is the logical height of the game window in pixels.
	// The bottom StatusBarHeight pixels hold the host status line.
	WindowHeight = 640
	// StatusBarHeight is the height of the status line below the playfield.
	StatusBarHeight = 40
)

// Viewport 游戏画布在窗口中的位置与缩放
type Viewport struct {
	X, Y  float64
	Scale float64
}

// FitViewport 把 w×h 的画布居中放进状态栏以上的区域，只缩小不放大
func FitViewport(w, h float64) Viewport {
	areaW, areaH := float64(WindowWidth), float64(WindowHeight-StatusBarHeight)
	scale := 1.0
	if w > areaW || h > areaH {
		scale = min(areaW/w, areaH/h)
	}
	return Viewport{
		X:     (areaW - w*scale) / 2,
		Y:     (areaH - h*scale) / 2,
		Scale: scale,
	}
}

// ToCanvas 窗口坐标转换为画布坐标
func (v Viewport) ToCanvas(x, y float64) (float64, float64) {
	return (x - v.X) / v.Scale, (y - v.Y) / v.Scale
}

// Contains 窗口坐标是否落在 w×h 画布内
func (v Viewport) Contains(x, y, w, h float64) bool {
	return isPointInRect(x, y, v.X, v.Y, w*v.Scale, h*v.Scale)
}

// isPointInRect 检查点是否在矩形内
func isPointInRect(px, py, x, y, width, height float64) bool {
	return px >= x && px <= x+width && py >= y && py <= y+height
}
