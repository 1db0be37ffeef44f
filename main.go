package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/arcade/pkg/app"
	"github.com/decker502/arcade/pkg/embedded"
	"github.com/decker502/arcade/pkg/scenes"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	gameID := flag.String("game", "", "直接进入指定游戏（bugblaster, machine），为空时显示菜单")
	configDir := flag.String("config", "", "游戏配置目录，为空时使用内置配置")
	flag.Parse()

	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Game:      *gameID,
		ConfigDir: *configDir,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(scenes.WindowWidth, scenes.WindowHeight)
	ebiten.SetWindowTitle("Arcade")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭窗口时先保存会话，由 App.Update 返回 ebiten.Termination
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
