package scenes

import (
	"errors"
	"strings"
	"testing"

	"github.com/decker502/arcade/internal/canvastest"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/games"
	"github.com/decker502/arcade/pkg/games/bugblaster"
	"github.com/decker502/arcade/pkg/games/machine"
)

// newServices 内存存储 + 场景工厂，与 app.NewApp 的装配方式一致
func newServices(t *testing.T) *Services {
	t.Helper()
	store := game.NewMemoryStore()
	sm := game.NewSceneManager()
	svc := &Services{
		SceneManager: sm,
		Configs:      games.DefaultConfigs(),
		Store:        store,
		Settings:     game.NewSettingsManager(store),
	}
	sm.SetSceneFactory(func(id string) game.Scene {
		gs, err := NewGameScene(svc, id)
		if err != nil {
			t.Logf("NewGameScene(%s): %v", id, err)
			return nil
		}
		return gs
	})
	return svc
}

func TestFitViewport(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float64
		wantX, wantY float64
		wantScale    float64
	}{
		{"刚好填满", 800, 600, 0, 0, 1},
		{"小画布居中", 600, 400, 100, 100, 1},
		{"大画布缩小", 1600, 1200, 0, 0, 0.5},
		{"宽画布按宽度缩小", 1600, 600, 0, 150, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := FitViewport(tt.w, tt.h)
			if vp.X != tt.wantX || vp.Y != tt.wantY || vp.Scale != tt.wantScale {
				t.Errorf("FitViewport(%v, %v) = %+v, want (%v, %v, %v)", tt.w, tt.h, vp, tt.wantX, tt.wantY, tt.wantScale)
			}
		})
	}
}

func TestViewportMapping(t *testing.T) {
	vp := FitViewport(600, 400)
	x, y := vp.ToCanvas(400, 300)
	if x != 300 || y != 200 {
		t.Errorf("ToCanvas(400, 300) = (%v, %v), want (300, 200)", x, y)
	}
	if vp.Contains(99, 300, 600, 400) {
		t.Error("point left of the canvas should be outside")
	}
	if !vp.Contains(100, 100, 600, 400) {
		t.Error("canvas corner should be inside")
	}

	half := FitViewport(1600, 1200)
	x, y = half.ToCanvas(400, 300)
	if x != 800 || y != 600 {
		t.Errorf("scaled ToCanvas = (%v, %v), want (800, 600)", x, y)
	}
}

func TestStatusLine(t *testing.T) {
	var s StatusLine
	var sink engine.StatusSink = &s
	sink.SetScore(42)
	sink.SetHighScore(100)
	sink.SetStatus("Wave 3")
	if got := s.String(); got != "Score 42   Best 100   Wave 3" {
		t.Errorf("String() = %q", got)
	}
}

// TestGameScenePress 点击：idle 时开始，运行时映射到画布坐标转发给引擎
func TestGameScenePress(t *testing.T) {
	svc := newServices(t)
	gs, err := NewGameScene(svc, machine.ID)
	if err != nil {
		t.Fatalf("NewGameScene failed: %v", err)
	}
	e := gs.Engine()

	gs.press(0, 0)
	if e.State() != game.StateRunning {
		t.Fatalf("state = %v, want running", e.State())
	}

	// 600x400 的画布在窗口中偏移 (100, 100)
	gs.press(50, 50)
	e.Tick(1.0 / 60)
	if got := e.World().Session.Score; got != 0 {
		t.Errorf("click outside the canvas scored %d", got)
	}
	gs.press(400, 300)
	e.Tick(1.0 / 60)
	if got := e.World().Session.Score; got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
}

func TestGameSceneCommands(t *testing.T) {
	svc := newServices(t)
	gs, err := NewGameScene(svc, bugblaster.ID)
	if err != nil {
		t.Fatalf("NewGameScene failed: %v", err)
	}
	e := gs.Engine()

	steps := []struct {
		cmd  command
		want game.SessionState
	}{
		{cmdPause, game.StateIdle}, // 未开始时暂停无效
		{cmdStart, game.StateRunning},
		{cmdStart, game.StateRunning}, // 运行中再按 Enter 无效
		{cmdPause, game.StatePaused},
		{cmdPause, game.StateRunning},
		{cmdReset, game.StateIdle},
	}
	for i, step := range steps {
		gs.apply(step.cmd)
		if e.State() != step.want {
			t.Fatalf("step %d: state = %v, want %v", i, e.State(), step.want)
		}
	}
}

func TestGameSceneSoundToggle(t *testing.T) {
	svc := newServices(t)
	gs, err := NewGameScene(svc, machine.ID)
	if err != nil {
		t.Fatalf("NewGameScene failed: %v", err)
	}
	gs.apply(cmdSound)
	if svc.Settings.GetSettings().SoundEnabled {
		t.Error("sound should be off after toggling")
	}
	if gs.status.Status() != "Sound off" {
		t.Errorf("status = %q", gs.status.Status())
	}

	// 设置已持久化
	reloaded := game.NewSettingsManager(svc.Store)
	if reloaded.GetSettings().SoundEnabled {
		t.Error("sound setting not persisted")
	}
}

func TestGameSceneShare(t *testing.T) {
	svc := newServices(t)
	var copied string
	svc.Clipboard = func(text string) error {
		copied = text
		return nil
	}
	gs, err := NewGameScene(svc, machine.ID)
	if err != nil {
		t.Fatalf("NewGameScene failed: %v", err)
	}
	gs.Start()
	gs.apply(cmdShare)
	if !strings.HasPrefix(copied, "I scored 0 in Useless Machine") {
		t.Errorf("copied %q", copied)
	}
	if gs.status.Status() != "Score copied to clipboard" {
		t.Errorf("status = %q", gs.status.Status())
	}

	svc.Clipboard = func(string) error { return errors.New("no clipboard") }
	gs.apply(cmdShare)
	if gs.status.Status() != "Clipboard unavailable" {
		t.Errorf("status = %q", gs.status.Status())
	}
}

// TestGameSceneBackToMenu Esc 回到菜单：保存快照并销毁引擎
func TestGameSceneBackToMenu(t *testing.T) {
	svc := newServices(t)
	if !svc.SceneManager.LoadGame(machine.ID) {
		t.Fatal("LoadGame failed")
	}
	gs := svc.SceneManager.GetCurrentScene().(*GameScene)
	gs.Start()
	gs.press(400, 300)
	gs.Engine().Tick(1.0 / 60)

	gs.apply(cmdMenu)

	menu, ok := svc.SceneManager.GetCurrentScene().(*MenuScene)
	if !ok {
		t.Fatalf("current scene = %T, want *MenuScene", svc.SceneManager.GetCurrentScene())
	}
	if !gs.Engine().Destroyed() {
		t.Error("engine should be destroyed after leaving the scene")
	}
	if !gs.closed {
		t.Error("scene should be closed")
	}
	if !menu.cards[1].summary.CanContinue {
		t.Error("menu should offer to continue the saved session")
	}

	// 关闭后的场景不再响应
	gs.Update(1.0 / 60)
	if gs.SaveOnExit() {
		t.Error("closed scene should not save")
	}
}

func TestOverlayLines(t *testing.T) {
	svc := newServices(t)
	gs, err := NewGameScene(svc, machine.ID)
	if err != nil {
		t.Fatalf("NewGameScene failed: %v", err)
	}

	title, lines := gs.overlayLines()
	if title != "Useless Machine" || len(lines) != 3 {
		t.Errorf("idle overlay = %q %q", title, lines)
	}

	gs.Start()
	if title, lines := gs.overlayLines(); title != "" || lines != nil {
		t.Errorf("running overlay = %q %q, want none", title, lines)
	}

	gs.Engine().QueueKey(machine.KeyStopMachine)
	gs.Engine().Tick(1.0 / 60)
	title, lines = gs.overlayLines()
	if title != "Machine is off (and relieved)" {
		t.Errorf("ended title = %q", title)
	}
	if len(lines) == 0 || lines[0] != "Score 0   Best 0" {
		t.Errorf("ended lines = %q", lines)
	}

	rec := canvastest.New(600, 400)
	gs.drawOverlay(rec)
	if rec.Count("rect") != 1 {
		t.Errorf("overlay rects = %d, want 1", rec.Count("rect"))
	}
}

func TestMenuClickStartsGame(t *testing.T) {
	svc := newServices(t)
	menu := NewMenuScene(svc)
	svc.SceneManager.SwitchTo(menu)

	// 第一张卡片中部
	menu.click(200, 150)

	gs, ok := svc.SceneManager.GetCurrentScene().(*GameScene)
	if !ok {
		t.Fatalf("current scene = %T, want *GameScene", svc.SceneManager.GetCurrentScene())
	}
	if gs.inst.Entry.ID != bugblaster.ID {
		t.Errorf("launched %s, want %s", gs.inst.Entry.ID, bugblaster.ID)
	}
	if gs.Engine().State() != game.StateRunning {
		t.Errorf("state = %v, want running", gs.Engine().State())
	}
	if got := svc.Settings.GetSettings().LastGame; got != bugblaster.ID {
		t.Errorf("LastGame = %q", got)
	}
}

func TestMenuClickOutsideCards(t *testing.T) {
	svc := newServices(t)
	menu := NewMenuScene(svc)
	svc.SceneManager.SwitchTo(menu)
	menu.click(10, 10)
	if svc.SceneManager.GetCurrentScene() != Scene(menu) {
		t.Error("click outside the cards should stay on the menu")
	}
}

// TestMenuContinue "继续"按钮从快照恢复分数
func TestMenuContinue(t *testing.T) {
	svc := newServices(t)

	inst, err := games.New(machine.ID, svc.Configs, engine.Host{Store: svc.Store})
	if err != nil {
		t.Fatalf("games.New failed: %v", err)
	}
	if err := inst.Engine.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	inst.Engine.QueuePointer(1, 1)
	inst.Engine.Tick(1.0 / 60)
	inst.Engine.QueuePointer(1, 1)
	inst.Engine.Tick(1.0 / 60)
	if !inst.Engine.SaveSnapshot() {
		t.Fatal("SaveSnapshot failed")
	}
	inst.Engine.Destroy()

	menu := NewMenuScene(svc)
	svc.SceneManager.SwitchTo(menu)
	card := menu.cards[1]
	if !card.summary.CanContinue {
		t.Fatal("expected the machine card to offer continue")
	}
	menu.click(card.resume.X+card.resume.W/2, card.resume.Y+card.resume.H/2)

	gs := svc.SceneManager.GetCurrentScene().(*GameScene)
	if gs.Engine().State() != game.StateRunning {
		t.Fatalf("state = %v, want running", gs.Engine().State())
	}
	if got := gs.Engine().World().Session.Score; got != 2 {
		t.Errorf("restored score = %d, want 2", got)
	}
}

func TestMenuDraw(t *testing.T) {
	svc := newServices(t)
	menu := NewMenuScene(svc)
	rec := canvastest.New(WindowWidth, WindowHeight)
	menu.draw(rec)

	want := map[string]bool{"1. Bug Blaster": false, "2. Useless Machine": false, "Play": false}
	for _, s := range rec.Texts() {
		if _, ok := want[s]; ok {
			want[s] = true
		}
		if s == "Continue" {
			t.Error("no snapshot: Continue button should be hidden")
		}
	}
	for s, found := range want {
		if !found {
			t.Errorf("menu text %q not drawn", s)
		}
	}
}
