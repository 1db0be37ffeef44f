// arcade-tty 在终端里运行街机小游戏（tcell 渲染，鼠标点击映射到画布坐标）
//
// 用法:
//
//	go run ./cmd/arcade-tty                # 菜单
//	go run ./cmd/arcade-tty -game machine  # 直接进入游戏
//	go run ./cmd/arcade-tty -verbose -log arcade.log
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/arcade/internal/tone"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/games"
	"github.com/decker502/arcade/pkg/terminal"
)

func main() {
	gameID := flag.String("game", "", "直接进入指定游戏（bugblaster, machine），为空时显示菜单")
	configDir := flag.String("config", games.DefaultConfigDir, "游戏配置目录，读取失败时使用内置默认值")
	verbose := flag.Bool("verbose", false, "启用详细日志输出（写入 -log 指定的文件）")
	logPath := flag.String("log", "arcade-tty.log", "详细日志文件")
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if *gameID != "" {
		if _, ok := games.Lookup(*gameID); !ok {
			fmt.Fprintf(os.Stderr, "未知游戏: %s\n", *gameID)
			os.Exit(2)
		}
	}

	if err := run(*gameID, *configDir); err != nil {
		fmt.Fprintf(os.Stderr, "arcade-tty: %v\n", err)
		os.Exit(1)
	}
}

func run(gameID, configDir string) error {
	configs, err := games.LoadConfigs(configDir)
	if err != nil {
		log.Printf("[Main] Warning: %v (using built-in defaults)", err)
		configs = games.DefaultConfigs()
	}

	var store game.Store
	if gs, err := game.OpenGdataStore(games.StoreName); err != nil {
		log.Printf("[Main] Warning: persistent storage unavailable: %v (using memory)", err)
		store = game.NewMemoryStore()
	} else {
		store = gs
	}

	// 扬声器不可用时静音运行
	var tones game.ToneGenerator
	speaker := tone.NewSpeakerPlayer()
	if err := speaker.Init(); err != nil {
		log.Printf("[Main] Warning: audio disabled: %v", err)
	} else {
		tones = speaker
		defer speaker.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	a, err := terminal.New(screen, terminal.Options{
		Configs:  configs,
		Store:    store,
		Tones:    tones,
		Settings: game.NewSettingsManager(store),
		Game:     gameID,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
