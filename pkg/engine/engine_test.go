package engine

import (
	"errors"
	"image/color"
	"reflect"
	"testing"

	"github.com/decker502/arcade/internal/canvastest"
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/types"
)

// recordingRules 记录引擎调用顺序的规则实现
type recordingRules struct {
	calls    []string
	expired  []string
	onAdv    func(w *World)
	onClick  func(w *World, x, y float64)
	resetHit int
}

func (r *recordingRules) Name() string { return "test" }
func (r *recordingRules) Start(w *World) {
	r.calls = append(r.calls, "start")
}
func (r *recordingRules) Advance(w *World, dt float64) {
	r.calls = append(r.calls, "advance")
	if r.onAdv != nil {
		r.onAdv(w)
	}
}
func (r *recordingRules) Spawn(w *World, dt float64) {
	r.calls = append(r.calls, "spawn")
}
func (r *recordingRules) Pointer(w *World, x, y float64) {
	r.calls = append(r.calls, "pointer")
	if r.onClick != nil {
		r.onClick(w, x, y)
	}
}
func (r *recordingRules) PointerMove(w *World, x, y float64) {
	r.calls = append(r.calls, "move")
}
func (r *recordingRules) Key(w *World, key Key) {
	r.calls = append(r.calls, "key:"+string(key))
}
func (r *recordingRules) Draw(w *World, c types.Canvas) {
	c.FillRect(0, 0, 1, 1, color.RGBA{A: 0xff})
}
func (r *recordingRules) DrawHUD(w *World, c types.Canvas) {
	c.DrawText("hud", 0, 0, color.RGBA{A: 0xff})
}
func (r *recordingRules) EffectExpired(w *World, name string) {
	r.expired = append(r.expired, name)
}
func (r *recordingRules) Reset(w *World) {
	r.resetHit++
}

func (r *recordingRules) take() []string {
	out := r.calls
	r.calls = nil
	return out
}

type fakeStatus struct {
	score, high int
	status      string
	updates     int
}

func (f *fakeStatus) SetScore(n int)     { f.score = n; f.updates++ }
func (f *fakeStatus) SetHighScore(n int) { f.high = n }
func (f *fakeStatus) SetStatus(s string) { f.status = s }

func testConfig() Config {
	bb := config.DefaultBugBlasterConfig()
	return Config{
		Width:      800,
		Height:     600,
		Background: color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff},
		ShakeDecay: 0.9,
		Lives:      3,
		ComboStep:  0.1,
		ComboGrace: 3,
		Particles:  bb.Particles,
		Sounds:     bb.Sounds,
		Seed:       42,
	}
}

func newTestEngine(t *testing.T, store game.Store) (*Engine, *recordingRules, *fakeStatus) {
	t.Helper()
	rules := &recordingRules{}
	status := &fakeStatus{}
	e := New(testConfig(), rules, Host{Status: status, Store: store})
	e.Init()
	return e, rules, status
}

func TestEngine_StateMachine(t *testing.T) {
	e, _, status := newTestEngine(t, nil)

	if e.State() != game.StateIdle || status.status != "Ready" {
		t.Fatalf("after Init: state %s status %q", e.State(), status.status)
	}
	if err := e.Pause(); !errors.Is(err, game.ErrInvalidTransition) {
		t.Errorf("Pause from idle: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.TogglePause(); err != nil || e.State() != game.StatePaused {
		t.Errorf("TogglePause → %s, %v", e.State(), err)
	}
	if err := e.TogglePause(); err != nil || e.State() != game.StateRunning {
		t.Errorf("TogglePause → %s, %v", e.State(), err)
	}
	e.End("Game Over")
	if e.State() != game.StateEnded || status.status != "Game Over" {
		t.Errorf("after End: %s %q", e.State(), status.status)
	}
	if err := e.Start(); err != nil {
		t.Errorf("Start from ended: %v", err)
	}
	e.Reset()
	if e.State() != game.StateIdle {
		t.Errorf("after Reset: %s", e.State())
	}
}

func TestEngine_TickOrder(t *testing.T) {
	e, rules, _ := newTestEngine(t, nil)
	e.Start()
	rules.take()

	e.QueuePointer(10, 10)
	e.QueuePointerMove(1, 1)
	e.QueuePointerMove(2, 2)
	e.QueueKey(KeySpace)
	e.Tick(1.0 / 60)

	want := []string{"advance", "spawn", "pointer", "move", "key:space"}
	if got := rules.take(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}

	// 队列已清空
	e.Tick(1.0 / 60)
	if got := rules.take(); !reflect.DeepEqual(got, []string{"advance", "spawn"}) {
		t.Errorf("second tick calls = %v", got)
	}
}

func TestEngine_NoUpdatesOutsideRunning(t *testing.T) {
	e, rules, _ := newTestEngine(t, nil)

	e.QueuePointer(1, 1)
	e.Tick(0.016)
	if len(rules.take()) != 0 {
		t.Error("idle engine must not call rules")
	}

	e.Start()
	e.Pause()
	rules.take()
	e.QueuePointer(1, 1)
	e.Tick(0.016)
	if len(rules.take()) != 0 {
		t.Error("paused engine must not call rules")
	}

	// 暂停期间的点击不会在恢复后生效
	e.Resume()
	e.Tick(0.016)
	if got := rules.take(); !reflect.DeepEqual(got, []string{"advance", "spawn"}) {
		t.Errorf("calls after resume = %v", got)
	}
}

func TestEngine_FreezeFrames(t *testing.T) {
	e, rules, _ := newTestEngine(t, nil)
	e.Start()
	e.World().Freeze(2)
	rules.take()

	e.Tick(0.016)
	e.Tick(0.016)
	if len(rules.take()) != 0 {
		t.Error("frozen frames must skip updates")
	}
	if e.World().Now() != 0 {
		t.Errorf("clock advanced while frozen: %v", e.World().Now())
	}
	e.Tick(0.016)
	if len(rules.take()) != 2 {
		t.Error("updates should resume after the freeze")
	}
}

func TestEngine_DestroyCancelsDeferredFlash(t *testing.T) {
	e, rules, _ := newTestEngine(t, nil)
	e.Start()
	w := e.World()

	id := w.Entities.CreateEntity()
	ecs.AddComponent(w.Entities, id, &components.HealthComponent{CurrentHealth: 2, MaxHealth: 2})
	ran := false
	w.Scheduler.After(0.1, func() {
		ran = true
		h, _ := ecs.GetComponent[*components.HealthComponent](w.Entities, id)
		h.CurrentHealth = 99
	})

	e.Destroy()
	for i := 0; i < 20; i++ {
		e.Tick(0.016)
	}
	if ran {
		t.Fatal("deferred callback ran after Destroy")
	}

	// 销毁后所有调用都是空操作
	rules.take()
	if err := e.Start(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Start after Destroy: %v", err)
	}
	e.QueuePointer(1, 1)
	e.Reset()
	e.End("x")
	e.Render(canvastest.New(800, 600))
	if len(rules.take()) != 0 {
		t.Error("rules called after Destroy")
	}
}

func TestEngine_ResetDropsDeferredTasks(t *testing.T) {
	e, rules, _ := newTestEngine(t, nil)
	e.Start()
	ran := false
	e.World().Scheduler.After(0.05, func() { ran = true })
	e.World().Particles.Spawn(1, 1, color.RGBA{A: 0xff}, 10)
	e.World().Effects.Activate("slowmo", 5)

	e.Reset()
	if rules.resetHit != 1 {
		t.Error("Resetter hook not called")
	}
	if e.World().Particles.Len() != 0 || len(e.World().Effects.Names()) != 0 {
		t.Error("particles or effects survived reset")
	}
	e.Start()
	for i := 0; i < 10; i++ {
		e.Tick(0.016)
	}
	if ran {
		t.Error("task scheduled before reset ran")
	}
}

func TestEngine_EffectExpiry(t *testing.T) {
	e, rules, _ := newTestEngine(t, nil)
	e.Start()
	e.World().Effects.Activate("shield", 0.05)
	for i := 0; i < 5; i++ {
		e.Tick(0.016)
	}
	if !reflect.DeepEqual(rules.expired, []string{"shield"}) {
		t.Errorf("expired = %v", rules.expired)
	}
}

func TestEngine_ComboExpiresInTick(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)
	e.Start()
	w := e.World()
	w.Score.ScoreHit(10, w.Now())
	if w.Session.Combo != 1 {
		t.Fatal("combo not registered")
	}
	for i := 0; i < 40; i++ {
		e.Tick(0.1)
	}
	if w.Session.Combo != 0 {
		t.Errorf("combo = %d after 4s, want 0", w.Session.Combo)
	}
}

func TestEngine_EndPersistsHighScore(t *testing.T) {
	store := game.NewMemoryStore()
	e, rules, status := newTestEngine(t, store)
	rules.onClick = func(w *World, x, y float64) {
		w.Score.RecordScore(120)
	}
	e.Start()
	e.QueuePointer(0, 0)
	e.Tick(0.016)
	if status.score != 120 || status.high != 120 {
		t.Errorf("status = %+v", status)
	}
	e.End("Game Over")

	data, err := store.Load("test", "highScore")
	if err != nil || string(data) != "120" {
		t.Errorf("stored high score = %q, %v", data, err)
	}

	// 新引擎从存储读取最高分
	e2, _, status2 := newTestEngine(t, store)
	if status2.high != 120 || e2.World().Score.HighScore() != 120 {
		t.Errorf("reloaded high score = %d", status2.high)
	}
}

// TestEngine_BeatenHighScorePersistedBeforeEnd 局中刷新的最高分在重置或销毁后不丢失
func TestEngine_BeatenHighScorePersistedBeforeEnd(t *testing.T) {
	tests := []struct {
		name  string
		tick  bool
		leave func(e *Engine)
	}{
		{"帧内保存后重置", true, func(e *Engine) { e.Reset() }},
		{"帧内保存后销毁", true, func(e *Engine) { e.Destroy() }},
		{"未推进直接重置", false, func(e *Engine) { e.Reset(); e.Destroy() }},
		{"未推进直接销毁", false, func(e *Engine) { e.Destroy() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := game.NewMemoryStore()
			e, rules, _ := newTestEngine(t, store)
			rules.onClick = func(w *World, x, y float64) {
				w.Score.RecordScore(10)
			}
			e.Start()
			if tt.tick {
				e.QueuePointer(0, 0)
				e.Tick(0.016)
				data, err := store.Load("test", "highScore")
				if err != nil || string(data) != "10" {
					t.Fatalf("stored high score after tick = %q, %v", data, err)
				}
			} else {
				e.World().Score.RecordScore(10)
			}
			tt.leave(e)

			e2, _, _ := newTestEngine(t, store)
			if got := e2.World().Score.HighScore(); got != 10 {
				t.Errorf("reloaded high score = %d, want 10", got)
			}
		})
	}
}

func TestEngine_ResetDiscardsSnapshot(t *testing.T) {
	store := game.NewMemoryStore()
	e, _, _ := newTestEngine(t, store)
	e.Start()
	e.World().Score.RecordScore(10)
	e.Pause()
	if !e.HasSnapshot() {
		t.Fatal("pause should save a snapshot")
	}

	e.Reset()
	if e.HasSnapshot() {
		t.Error("snapshot should be discarded on Reset")
	}
	if err := e.Continue(); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("Continue after Reset: %v, want ErrNotFound", err)
	}
	if e.World().Session.Score != 0 {
		t.Errorf("score = %d after Reset", e.World().Session.Score)
	}
}

// TestEngine_EndStopsSameFrameTasks 任务结束会话后，同一帧到期的其余任务不再执行
func TestEngine_EndStopsSameFrameTasks(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)
	e.Start()
	w := e.World()
	ran := false
	w.Scheduler.After(0.01, func() { w.End("Machine is off") })
	w.Scheduler.After(0.01, func() { ran = true })

	e.Tick(0.016)
	if e.State() != game.StateEnded {
		t.Fatalf("state = %s, want ended", e.State())
	}
	if ran {
		t.Error("task ran after the session ended")
	}
	if w.Scheduler.Pending() != 0 {
		t.Errorf("pending = %d after End", w.Scheduler.Pending())
	}
}

func TestEngine_EndFromRules(t *testing.T) {
	e, rules, _ := newTestEngine(t, nil)
	rules.onAdv = func(w *World) { w.End("Game Over") }
	e.Start()
	rules.take()
	e.QueuePointer(1, 1)
	e.Tick(0.016)
	if got := rules.take(); !reflect.DeepEqual(got, []string{"advance"}) {
		t.Errorf("calls = %v, want only advance", got)
	}
	if e.State() != game.StateEnded {
		t.Errorf("state = %s", e.State())
	}
}

func TestEngine_PauseSavesSnapshotAndContinue(t *testing.T) {
	store := game.NewMemoryStore()
	e, _, _ := newTestEngine(t, store)

	if err := e.Continue(); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("Continue without snapshot: %v", err)
	}

	e.Start()
	w := e.World()
	w.Session.Wave = 4
	w.Score.RecordScore(75)
	e.Pause()
	e.Destroy()

	e2, rules2, _ := newTestEngine(t, store)
	if !e2.HasSnapshot() {
		t.Fatal("snapshot should exist after pause")
	}
	if err := e2.Continue(); err != nil {
		t.Fatal(err)
	}
	s := e2.World().Session
	if s.Wave != 4 || s.Score != 75 || s.State != game.StateRunning {
		t.Errorf("continued session = %+v", s)
	}
	if !reflect.DeepEqual(rules2.take(), []string{"start"}) {
		t.Error("rules.Start not called on continue")
	}

	// 结束后快照被清除
	e2.End("Game Over")
	if e2.HasSnapshot() {
		t.Error("snapshot should be cleared on End")
	}
}

func TestEngine_ContinueCorruptSnapshot(t *testing.T) {
	store := game.NewMemoryStore()
	store.Save("test", "session", []byte{0xc1, 0x00})
	e, _, _ := newTestEngine(t, store)

	if err := e.Continue(); err == nil {
		t.Error("corrupt snapshot should report an error")
	}
	s := e.World().Session
	if s.State != game.StateRunning || s.Wave != 1 || s.Lives != 3 {
		t.Errorf("corrupt snapshot should start a default session, got %+v", s)
	}
}

func TestEngine_RenderOrderAndShake(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)
	e.Start()
	e.World().Particles.Spawn(5, 5, color.RGBA{R: 0xff, A: 0xff}, 1)
	e.World().Shake(10)

	rec := canvastest.New(800, 600)
	e.Render(rec)

	kinds := make([]string, 0, len(rec.Ops))
	for _, op := range rec.Ops {
		kinds = append(kinds, op.Kind)
	}
	if want := []string{"fill", "rect", "circle", "text"}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("render order = %v, want %v", kinds, want)
	}
	if rec.Ops[0].OffX == 0 && rec.Ops[0].OffY == 0 {
		t.Error("shake should offset the playfield")
	}
	if hud := rec.Ops[3]; hud.OffX != 0 || hud.OffY != 0 {
		t.Error("HUD must not shake")
	}

	for i := 0; i < 120; i++ {
		e.Tick(1.0 / 60)
	}
	if e.Shake() != 0 {
		t.Errorf("shake should decay to 0, got %v", e.Shake())
	}
}

func TestEngine_NilHost(t *testing.T) {
	e := New(testConfig(), &recordingRules{}, Host{})
	e.Init()
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	e.World().Audio.PlaySound("hit")
	e.World().Score.RecordScore(10)
	e.Tick(0.016)
	e.Pause()
	e.End("done")
}
