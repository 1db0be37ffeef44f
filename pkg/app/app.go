// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/games"
	"github.com/decker502/arcade/pkg/scenes"
)

// AppName 存储目录名（gdata 使用）
const AppName = games.StoreName

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Game 直接进入的游戏 ID，为空时显示菜单
	Game string
	// ConfigDir 游戏配置目录，为空时使用内置配置
	ConfigDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configs, err := games.LoadConfigs(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 持久化不可用时退化为内存存储（本次运行内有效）
	var store game.Store
	if gs, err := game.OpenGdataStore(AppName); err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v (using memory)", err)
		store = game.NewMemoryStore()
	} else {
		store = gs
	}
	settings := game.NewSettingsManager(store)

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	sceneManager := game.NewSceneManager()
	svc := &scenes.Services{
		SceneManager: sceneManager,
		Configs:      configs,
		Store:        store,
		Tones:        NewTonePlayer(audioContext),
		Settings:     settings,
		Clipboard:    clipboard.WriteAll,
	}
	sceneManager.SetSceneFactory(func(gameID string) game.Scene {
		gs, err := scenes.NewGameScene(svc, gameID)
		if err != nil {
			log.Printf("[App] %v", err)
			return nil
		}
		return gs
	})

	// 根据配置决定启动场景
	if cfg.Game != "" {
		if _, ok := games.Lookup(cfg.Game); !ok {
			return nil, fmt.Errorf("unknown game %q", cfg.Game)
		}
		log.Printf("[App] Starting game: %s", cfg.Game)
		sceneManager.LoadGame(cfg.Game)
	} else {
		sceneManager.SwitchTo(scenes.NewMenuScene(svc))
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 关闭窗口前保存当前会话
	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(scenes.WindowWidth, scenes.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", scenes.WindowWidth, scenes.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// SaveOnExit 保存当前场景（运行中的游戏会话）
func (a *App) SaveOnExit() {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if s.SaveOnExit() {
			log.Printf("[App] Session saved on exit")
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.WindowWidth, scenes.WindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
