package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/arcade/pkg/engine"
)

// command 宿主自己处理的按键命令
type command int

const (
	cmdNone command = iota
	cmdStart
	cmdPause
	cmdReset
	cmdMenu
	cmdSound
	cmdShare
)

var commandKeys = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyEnter, cmdStart},
	{ebiten.KeyNumpadEnter, cmdStart},
	{ebiten.KeySpace, cmdPause},
	{ebiten.KeyP, cmdPause},
	{ebiten.KeyR, cmdReset},
	{ebiten.KeyEscape, cmdMenu},
	{ebiten.KeyM, cmdSound},
	{ebiten.KeyC, cmdShare},
}

// ruleKeys 原样转发给规则的按键（数字键切换心情等）
var ruleKeys = map[ebiten.Key]engine.Key{
	ebiten.KeyDigit0: "0",
	ebiten.KeyDigit1: "1",
	ebiten.KeyDigit2: "2",
	ebiten.KeyDigit3: "3",
	ebiten.KeyDigit4: "4",
	ebiten.KeyDigit5: "5",
	ebiten.KeyDigit6: "6",
	ebiten.KeyDigit7: "7",
	ebiten.KeyDigit8: "8",
	ebiten.KeyDigit9: "9",
	ebiten.KeyT:      "t",
	ebiten.KeyS:      engine.KeyS,
}

// justPressedCommand 本帧新按下的第一个宿主命令
func justPressedCommand() command {
	for _, k := range commandKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			return k.cmd
		}
	}
	return cmdNone
}

// justPressedRuleKeys 本帧新按下的规则按键，追加到 dst
func justPressedRuleKeys(dst []engine.Key) []engine.Key {
	for k, key := range ruleKeys {
		if inpututil.IsKeyJustPressed(k) {
			dst = append(dst, key)
		}
	}
	return dst
}

// justPressedPoints 本帧新的点击与触摸位置（窗口坐标），追加到 dst
func justPressedPoints(dst [][2]float64, touches []ebiten.TouchID) ([][2]float64, []ebiten.TouchID) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dst = append(dst, [2]float64{float64(x), float64(y)})
	}
	touches = inpututil.AppendJustPressedTouchIDs(touches[:0])
	for _, id := range touches {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, [2]float64{float64(x), float64(y)})
	}
	return dst, touches
}
