package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/games"
	"github.com/decker502/arcade/pkg/types"
	"github.com/decker502/arcade/pkg/vmath"
)

// overlayFadeIn 离开运行状态后提示层淡入的时间（秒）
const overlayFadeIn = 0.25

var (
	frameColor   = types.MustHexColor("#020617")
	statusColor  = types.MustHexColor("#cbd5e1")
	overlayShade = color.RGBA{A: 0xa0}
	overlayTitle = types.MustHexColor("#fde047")
	overlayText  = types.MustHexColor("#f8fafc")
)

// Services 所有场景共用的宿主能力
type Services struct {
	SceneManager *game.SceneManager
	Configs      *games.Configs
	Store        game.Store            // 可为 nil
	Tones        game.ToneGenerator    // 可为 nil
	Settings     *game.SettingsManager // 可为 nil
	// Clipboard 写入剪贴板，nil 时分享不可用
	Clipboard func(text string) error
}

// GameScene 运行一个小游戏：把 ebiten 输入转成引擎输入，把引擎画面画进窗口
type GameScene struct {
	svc      *Services
	inst     *games.Instance
	status   *StatusLine
	canvas   *EbitenCanvas
	viewport Viewport
	closed   bool

	// overlayAge 离开运行状态后经过的时间，控制提示层淡入
	overlayAge float64

	// 输入缓冲，每帧复用
	lastX, lastY int
	points       [][2]float64
	touches      []ebiten.TouchID
	keys         []engine.Key

	screenCanvas *EbitenCanvas
}

// NewGameScene 创建游戏场景，游戏处于 idle 状态
func NewGameScene(svc *Services, gameID string) (*GameScene, error) {
	status := &StatusLine{}
	inst, err := games.New(gameID, svc.Configs, engine.Host{
		Status:   status,
		Store:    svc.Store,
		Tones:    svc.Tones,
		Settings: svc.Settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game %s: %w", gameID, err)
	}

	bounds := inst.Engine.World().Bounds
	s := &GameScene{
		svc:      svc,
		inst:     inst,
		status:   status,
		canvas:   NewEbitenCanvas(ebiten.NewImage(int(bounds.W), int(bounds.H))),
		viewport:   FitViewport(bounds.W, bounds.H),
		lastX:      -1,
		lastY:      -1,
		overlayAge: overlayFadeIn,
	}
	log.Printf("[GameScene] Created %s (%vx%v, scale %.2f)", gameID, bounds.W, bounds.H, s.viewport.Scale)
	return s, nil
}

// Engine 场景驱动的引擎
func (s *GameScene) Engine() *engine.Engine {
	return s.inst.Engine
}

// Start 开始新的一局
func (s *GameScene) Start() {
	if err := s.inst.Engine.Start(); err != nil {
		log.Printf("[GameScene] Start failed: %v", err)
	}
}

// Continue 从保存的快照继续
func (s *GameScene) Continue() error {
	return s.inst.Engine.Continue()
}

// Update 实现 Scene：宿主命令 → 指针 → 规则按键 → 引擎推进
func (s *GameScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	if cmd := justPressedCommand(); cmd != cmdNone {
		s.apply(cmd)
		if s.closed {
			return
		}
	}

	x, y := ebiten.CursorPosition()
	if x != s.lastX || y != s.lastY {
		s.lastX, s.lastY = x, y
		s.move(float64(x), float64(y))
	}
	s.points, s.touches = justPressedPoints(s.points[:0], s.touches)
	for _, p := range s.points {
		s.press(p[0], p[1])
	}
	s.keys = justPressedRuleKeys(s.keys[:0])
	for _, k := range s.keys {
		s.inst.Engine.QueueKey(k)
	}

	s.inst.Engine.Tick(deltaTime)
	if s.inst.Engine.State() == game.StateRunning {
		s.overlayAge = 0
	} else {
		s.overlayAge += deltaTime
	}
}

// apply 执行宿主命令
func (s *GameScene) apply(cmd command) {
	e := s.inst.Engine
	switch cmd {
	case cmdStart:
		if st := e.State(); st == game.StateIdle || st == game.StateEnded {
			s.Start()
		}
	case cmdPause:
		if st := e.State(); st == game.StateRunning || st == game.StatePaused {
			if err := e.TogglePause(); err != nil {
				log.Printf("[GameScene] Toggle pause failed: %v", err)
			}
		}
	case cmdReset:
		e.Reset()
	case cmdMenu:
		// SwitchTo 会先保存快照，之后菜单再读取摘要
		menu := NewMenuScene(s.svc)
		s.svc.SceneManager.SwitchTo(menu)
		menu.Refresh()
	case cmdSound:
		s.toggleSound()
	case cmdShare:
		s.share()
	}
}

// press 处理一次点击（窗口坐标）：未开始时开始，暂停时继续，运行时转发给引擎
func (s *GameScene) press(x, y float64) {
	e := s.inst.Engine
	switch e.State() {
	case game.StateIdle, game.StateEnded:
		s.Start()
	case game.StatePaused:
		if err := e.Resume(); err != nil {
			log.Printf("[GameScene] Resume failed: %v", err)
		}
	case game.StateRunning:
		bounds := e.World().Bounds
		if s.viewport.Contains(x, y, bounds.W, bounds.H) {
			e.QueuePointer(s.viewport.ToCanvas(x, y))
		}
	}
}

// move 转发指针移动（窗口坐标），画布外的移动忽略
func (s *GameScene) move(x, y float64) {
	bounds := s.inst.Engine.World().Bounds
	if s.viewport.Contains(x, y, bounds.W, bounds.H) {
		s.inst.Engine.QueuePointerMove(s.viewport.ToCanvas(x, y))
	}
}

func (s *GameScene) toggleSound() {
	sm := s.svc.Settings
	if sm == nil {
		return
	}
	if sm.ToggleSound() {
		s.status.SetStatus("Sound on")
	} else {
		s.status.SetStatus("Sound off")
	}
	if err := sm.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings: %v", err)
	}
}

func (s *GameScene) share() {
	if s.svc.Clipboard == nil {
		return
	}
	if err := s.svc.Clipboard(games.ShareText(s.inst)); err != nil {
		log.Printf("[GameScene] clipboard copy failed: %v", err)
		s.status.SetStatus("Clipboard unavailable")
		return
	}
	s.status.SetStatus("Score copied to clipboard")
}

// Draw 实现 Scene
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(frameColor)
	if s.closed {
		return
	}
	s.inst.Engine.Render(s.canvas)
	s.drawOverlay(s.canvas)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.viewport.Scale, s.viewport.Scale)
	op.GeoM.Translate(s.viewport.X, s.viewport.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.canvas.Image(), op)

	if s.screenCanvas == nil || s.screenCanvas.Image() != screen {
		s.screenCanvas = NewEbitenCanvas(screen)
	}
	s.screenCanvas.DrawText(s.status.String(), 10, WindowHeight-StatusBarHeight+(StatusBarHeight-types.GlyphHeight)/2, statusColor)
}

// overlayLines 非运行状态下覆盖在画布上的提示
func (s *GameScene) overlayLines() (string, []string) {
	e := s.inst.Engine
	entry := s.inst.Entry
	switch e.State() {
	case game.StateIdle:
		return entry.Title, []string{entry.Blurb, startHint(), entry.Help}
	case game.StatePaused:
		return "Paused", []string{"Space to resume", "Esc for the menu"}
	case game.StateEnded:
		w := e.World()
		return e.Status(), []string{
			fmt.Sprintf("Score %d   Best %d", w.Session.Score, w.Score.HighScore()),
			"Enter to play again",
			"C to copy your score",
		}
	}
	return "", nil
}

func (s *GameScene) drawOverlay(c types.Canvas) {
	title, lines := s.overlayLines()
	if title == "" && len(lines) == 0 {
		return
	}
	k := vmath.EaseOutCubic(s.overlayAge / overlayFadeIn)
	w, h := c.Size()
	c.FillRect(0, 0, w, h, types.Fade(overlayShade, k))
	lineH := float64(types.GlyphHeight) + 8
	y := h/2 - lineH*float64(len(lines)+1)/2 + vmath.Lerp(12, 0, k)
	c.DrawText(title, (w-types.TextWidth(title))/2, y, types.Fade(overlayTitle, k))
	for _, line := range lines {
		y += lineH
		c.DrawText(line, (w-types.TextWidth(line))/2, y, types.Fade(overlayText, k))
	}
}

// startHint 触屏设备没有键盘
func startHint() string {
	if IsMobile() {
		return "Tap to start"
	}
	return "Click or press Enter to start"
}

// SaveOnExit 实现 game.Saveable：保存运行中的会话
func (s *GameScene) SaveOnExit() bool {
	if s.closed {
		return false
	}
	return s.inst.Engine.SaveSnapshot()
}

// Close 实现 game.Closer：销毁引擎，之后不再转发输入
func (s *GameScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.inst.Engine.Destroy()
	s.canvas.Image().Deallocate()
}
