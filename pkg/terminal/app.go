package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/games"
)

// frameInterval 约 60 FPS
const frameInterval = 16 * time.Millisecond

var (
	menuStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Options 终端宿主的外部能力
type Options struct {
	Configs  *games.Configs
	Store    game.Store            // 可为 nil
	Tones    game.ToneGenerator    // 可为 nil
	Settings *game.SettingsManager // 可为 nil
	// Game 直接进入的游戏，为空时显示菜单
	Game string
}

// statusBar 最底行的分数/状态，实现 engine.StatusSink
type statusBar struct {
	score, high int
	text        string
}

func (s *statusBar) SetScore(score int)     { s.score = score }
func (s *statusBar) SetHighScore(score int) { s.high = score }
func (s *statusBar) SetStatus(text string)  { s.text = text }

func (s *statusBar) String() string {
	return fmt.Sprintf(" Score %d  Best %d  %s", s.score, s.high, s.text)
}

// App 在 tcell 屏幕上运行菜单与游戏
//
// 所有引擎调用都发生在 Run 的 select 循环中（单一修改者），
// 事件由独立的 goroutine 通过 channel 送入。
type App struct {
	screen tcell.Screen
	opts   Options

	inst   *games.Instance // nil 表示在菜单中
	grid   *Grid
	status *statusBar

	summaries []games.Summary // 菜单显示的存档摘要
	mouseDown bool
	lastCol   int
	lastRow   int
	message   string
}

// New 创建终端宿主，screen 必须已经 Init
func New(screen tcell.Screen, opts Options) (*App, error) {
	if opts.Configs == nil {
		opts.Configs = games.DefaultConfigs()
	}
	a := &App{screen: screen, opts: opts, lastCol: -1, lastRow: -1}
	if opts.Game != "" {
		if err := a.open(opts.Game); err != nil {
			return nil, err
		}
		return a, nil
	}
	a.refreshMenu()
	return a, nil
}

// refreshMenu 重新读取每个游戏的最高分与快照
func (a *App) refreshMenu() {
	a.summaries = a.summaries[:0]
	for _, entry := range games.Entries {
		a.summaries = append(a.summaries, games.Summarize(a.opts.Store, entry.ID))
	}
}

// Engine 当前游戏的引擎，在菜单中时返回 nil
func (a *App) Engine() *engine.Engine {
	if a.inst == nil {
		return nil
	}
	return a.inst.Engine
}

// Grid 当前游戏的单元格画布
func (a *App) Grid() *Grid {
	return a.grid
}

// open 创建游戏，画布占据除最后一行以外的整个屏幕
func (a *App) open(id string) error {
	status := &statusBar{}
	inst, err := games.New(id, a.opts.Configs, engine.Host{
		Status:   status,
		Store:    a.opts.Store,
		Tones:    a.opts.Tones,
		Settings: a.opts.Settings,
	})
	if err != nil {
		return err
	}
	if a.opts.Settings != nil {
		a.opts.Settings.SetLastGame(id)
		if err := a.opts.Settings.Save(); err != nil {
			log.Printf("[Terminal] Warning: failed to save settings: %v", err)
		}
	}
	w, h := a.screen.Size()
	bounds := inst.Engine.World().Bounds
	a.inst = inst
	a.status = status
	a.grid = NewGrid(w, h-1, bounds.W, bounds.H)
	log.Printf("[Terminal] Opened %s on a %dx%d grid", id, w, h-1)
	return nil
}

// closeGame 保存快照并销毁引擎，回到菜单
func (a *App) closeGame() {
	if a.inst == nil {
		return
	}
	a.inst.Engine.SaveSnapshot()
	a.inst.Engine.Destroy()
	a.inst = nil
	a.grid = nil
	a.status = nil
	a.refreshMenu()
}

// Run 事件循环，直到 ctx 取消或用户退出
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go a.poll(events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			a.Shutdown()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				a.Shutdown()
				return nil
			}
			if !a.HandleEvent(ev) {
				a.Shutdown()
				return nil
			}
		case now := <-ticker.C:
			a.Step(now.Sub(last).Seconds())
			last = now
			a.Draw()
		}
	}
}

// poll 把 tcell 事件送入 channel；屏幕关闭（PollEvent 返回 nil）或 done 关闭时停止
func (a *App) poll(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Shutdown 退出前保存会话
func (a *App) Shutdown() {
	a.closeGame()
}

// Step 推进一帧
func (a *App) Step(dt float64) {
	if a.inst != nil {
		a.inst.Engine.Tick(dt)
	}
}

// HandleEvent 处理一个 tcell 事件，返回 false 表示退出
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		w, h := a.screen.Size()
		if a.grid != nil {
			a.grid.Resize(w, h-1)
		}
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if a.inst == nil {
		return a.menuKey(ev)
	}

	e := a.inst.Engine
	switch ev.Key() {
	case tcell.KeyEscape:
		a.closeGame()
		return true
	case tcell.KeyEnter:
		if st := e.State(); st == game.StateIdle || st == game.StateEnded {
			a.start()
		}
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r := ev.Rune(); r {
	case 'q':
		return false
	case ' ', 'p':
		if st := e.State(); st == game.StateRunning || st == game.StatePaused {
			if err := e.TogglePause(); err != nil {
				log.Printf("[Terminal] Toggle pause failed: %v", err)
			}
		}
	case 'r':
		e.Reset()
	default:
		if (r >= '0' && r <= '9') || r == 't' || r == 's' {
			e.QueueKey(engine.Key(string(r)))
		}
	}
	return true
}

func (a *App) menuKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	r := ev.Rune()
	if r == 'q' {
		return false
	}
	if i := int(r - '1'); i >= 0 && i < len(games.Entries) {
		if err := a.open(games.Entries[i].ID); err != nil {
			a.message = err.Error()
			return true
		}
		a.start()
	}
	return true
}

func (a *App) start() {
	if err := a.inst.Engine.Start(); err != nil {
		log.Printf("[Terminal] Start failed: %v", err)
	}
}

// handleMouse 左键按下的瞬间算一次点击，移动转发为指针移动
func (a *App) handleMouse(col, row int, buttons tcell.ButtonMask) {
	pressed := buttons&tcell.Button1 != 0
	clicked := pressed && !a.mouseDown
	a.mouseDown = pressed
	if a.inst == nil || a.grid == nil {
		return
	}
	cols, rows := a.grid.Dims()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}

	e := a.inst.Engine
	x, y := a.grid.ToCanvas(col, row)
	if col != a.lastCol || row != a.lastRow {
		a.lastCol, a.lastRow = col, row
		e.QueuePointerMove(x, y)
	}
	if !clicked {
		return
	}
	switch e.State() {
	case game.StateIdle, game.StateEnded:
		a.start()
	case game.StatePaused:
		if err := e.Resume(); err != nil {
			log.Printf("[Terminal] Resume failed: %v", err)
		}
	case game.StateRunning:
		e.QueuePointer(x, y)
	}
}

// Draw 绘制当前画面并刷新屏幕
func (a *App) Draw() {
	a.screen.Clear()
	if a.inst == nil {
		a.drawMenu()
	} else {
		a.drawGame()
	}
	a.screen.Show()
}

func (a *App) drawGame() {
	a.inst.Engine.Render(a.grid)
	a.grid.Flush(a.screen, 0)

	w, h := a.screen.Size()
	line := a.status.String()
	switch a.inst.Engine.State() {
	case game.StateIdle:
		line += "  [enter/click] start"
	case game.StatePaused:
		line += "  [space] resume"
	case game.StateEnded:
		line += "  [enter] again  [esc] menu"
	}
	fillRow(a.screen, h-1, w, statusStyle)
	drawString(a.screen, 0, h-1, line, statusStyle)
}

func (a *App) drawMenu() {
	drawString(a.screen, 2, 1, "ARCADE", titleStyle)
	row := 3
	for i, entry := range games.Entries {
		title := fmt.Sprintf("%d. %s", i+1, entry.Title)
		if i < len(a.summaries) {
			title += fmt.Sprintf("  (best %d)", a.summaries[i].Best)
		}
		drawString(a.screen, 2, row, title, titleStyle)
		drawString(a.screen, 5, row+1, entry.Blurb, menuStyle)
		drawString(a.screen, 5, row+2, entry.Help, menuStyle)
		row += 4
	}
	drawString(a.screen, 2, row, "press a number to play, q to quit", menuStyle)
	if a.message != "" {
		drawString(a.screen, 2, row+2, a.message, menuStyle)
	}
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func fillRow(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
