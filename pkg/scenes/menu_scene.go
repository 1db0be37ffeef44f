package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/arcade/pkg/games"
	"github.com/decker502/arcade/pkg/types"
)

var (
	menuBackground = types.MustHexColor("#0f172a")
	cardFill       = types.MustHexColor("#1e293b")
	cardHover      = types.MustHexColor("#334155")
	cardBorder     = types.MustHexColor("#64748b")
	buttonFill     = types.MustHexColor("#2563eb")
	titleColor     = types.MustHexColor("#fde047")
	textColor      = types.MustHexColor("#e2e8f0")
	mutedColor     = types.MustHexColor("#94a3b8")
)

// 菜单卡片布局
const (
	cardX      = 100
	cardY      = 120
	cardWidth  = 600
	cardHeight = 130
	cardGap    = 20

	buttonWidth  = 90
	buttonHeight = 28
)

// rect 窗口坐标中的矩形
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return isPointInRect(x, y, r.X, r.Y, r.W, r.H)
}

// menuCard 菜单中一个游戏的卡片
type menuCard struct {
	entry   games.Entry
	summary games.Summary
	bounds  rect
	play    rect
	resume  rect
}

// MenuScene 游戏选择菜单：最高分、成就与"继续"按钮
type MenuScene struct {
	svc             *Services
	cards           []menuCard
	hovered         int // -1 表示没有
	wasMousePressed bool
	touches         []ebiten.TouchID
	canvas          *EbitenCanvas
	message         string
}

// NewMenuScene 创建菜单，读取每个游戏的存档摘要
func NewMenuScene(svc *Services) *MenuScene {
	m := &MenuScene{svc: svc, hovered: -1}
	for i, entry := range games.Entries {
		y := float64(cardY + i*(cardHeight+cardGap))
		bounds := rect{cardX, y, cardWidth, cardHeight}
		bx := bounds.X + bounds.W - buttonWidth - 16
		by := bounds.Y + bounds.H - buttonHeight - 14
		m.cards = append(m.cards, menuCard{
			entry:   entry,
			bounds:  bounds,
			play:    rect{bx, by, buttonWidth, buttonHeight},
			resume:  rect{bx - buttonWidth - 12, by, buttonWidth, buttonHeight},
		})
	}
	m.Refresh()
	return m
}

// Refresh 重新读取每个游戏的最高分、快照与成就
func (m *MenuScene) Refresh() {
	for i := range m.cards {
		m.cards[i].summary = games.Summarize(m.svc.Store, m.cards[i].entry.ID)
	}
}

// Update 实现 Scene
func (m *MenuScene) Update(deltaTime float64) {
	mouseX, mouseY := ebiten.CursorPosition()
	m.hovered = m.cardAt(float64(mouseX), float64(mouseY))

	isMousePressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	isMouseClicked := isMousePressed && !m.wasMousePressed
	m.wasMousePressed = isMousePressed
	if isMouseClicked {
		m.click(float64(mouseX), float64(mouseY))
		return
	}

	m.touches = inpututil.AppendJustPressedTouchIDs(m.touches[:0])
	if len(m.touches) > 0 {
		x, y := ebiten.TouchPosition(m.touches[0])
		m.click(float64(x), float64(y))
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		m.launchIndex(0, false)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		m.launchIndex(1, false)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		m.launchLast()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		m.toggleSound()
	}
}

// cardAt 返回 (x, y) 所在卡片的下标，没有时返回 -1
func (m *MenuScene) cardAt(x, y float64) int {
	for i, c := range m.cards {
		if c.bounds.contains(x, y) {
			return i
		}
	}
	return -1
}

// click 点击"继续"按钮从快照继续，点击卡片其余位置开始新的一局
func (m *MenuScene) click(x, y float64) {
	i := m.cardAt(x, y)
	if i < 0 {
		return
	}
	c := m.cards[i]
	resume := c.summary.CanContinue && c.resume.contains(x, y)
	m.launchIndex(i, resume)
}

func (m *MenuScene) launchIndex(i int, resume bool) {
	if i < 0 || i >= len(m.cards) {
		return
	}
	m.launch(m.cards[i].entry.ID, resume)
}

// launchLast Enter 键：继续上次玩的游戏，没有记录时选第一个
func (m *MenuScene) launchLast() {
	id := m.cards[0].entry.ID
	if m.svc.Settings != nil {
		if last := m.svc.Settings.GetSettings().LastGame; last != "" {
			if _, ok := games.Lookup(last); ok {
				id = last
			}
		}
	}
	m.launch(id, false)
}

func (m *MenuScene) launch(id string, resume bool) {
	log.Printf("[MenuScene] Launching %s (resume=%v)", id, resume)
	if sm := m.svc.Settings; sm != nil {
		sm.SetLastGame(id)
		if err := sm.Save(); err != nil {
			log.Printf("[MenuScene] Warning: failed to save settings: %v", err)
		}
	}
	if !m.svc.SceneManager.LoadGame(id) {
		m.message = fmt.Sprintf("Could not load %s", id)
		return
	}
	gs, ok := m.svc.SceneManager.GetCurrentScene().(*GameScene)
	if !ok {
		return
	}
	if resume {
		if err := gs.Continue(); err != nil {
			log.Printf("[MenuScene] Continue failed: %v", err)
		}
		return
	}
	gs.Start()
}

func (m *MenuScene) toggleSound() {
	sm := m.svc.Settings
	if sm == nil {
		return
	}
	if sm.ToggleSound() {
		m.message = "Sound on"
	} else {
		m.message = "Sound off"
	}
	if err := sm.Save(); err != nil {
		log.Printf("[MenuScene] Warning: failed to save settings: %v", err)
	}
}

// Draw 实现 Scene
func (m *MenuScene) Draw(screen *ebiten.Image) {
	if m.canvas == nil || m.canvas.Image() != screen {
		m.canvas = NewEbitenCanvas(screen)
	}
	m.draw(m.canvas)
}

func (m *MenuScene) draw(c types.Canvas) {
	c.Fill(menuBackground)
	title := "ARCADE"
	c.DrawText(title, (WindowWidth-types.TextWidth(title))/2, 50, titleColor)
	sub := "Pick a game: click a card or press its number"
	if IsMobile() {
		sub = "Pick a game: tap a card"
	}
	c.DrawText(sub, (WindowWidth-types.TextWidth(sub))/2, 75, mutedColor)

	for i, card := range m.cards {
		m.drawCard(c, i, card)
	}

	footer := "Enter: last game   M: sound   F11: fullscreen"
	if m.message != "" {
		footer = m.message
	}
	c.DrawText(footer, 10, WindowHeight-StatusBarHeight+(StatusBarHeight-types.GlyphHeight)/2, mutedColor)
}

func (m *MenuScene) drawCard(c types.Canvas, i int, card menuCard) {
	b := card.bounds
	fill := cardFill
	if i == m.hovered {
		fill = cardHover
	}
	c.FillRect(b.X, b.Y, b.W, b.H, fill)
	c.StrokeLine(b.X, b.Y, b.X+b.W, b.Y, 1, cardBorder)
	c.StrokeLine(b.X, b.Y+b.H, b.X+b.W, b.Y+b.H, 1, cardBorder)

	x := b.X + 16
	c.DrawText(fmt.Sprintf("%d. %s", i+1, card.entry.Title), x, b.Y+14, titleColor)
	c.DrawText(card.entry.Blurb, x, b.Y+36, textColor)
	c.DrawText(fmt.Sprintf("Best %d", card.summary.Best), x, b.Y+58, textColor)
	if len(card.summary.Achievements) > 0 {
		c.DrawText("Achievements: "+strings.Join(card.summary.Achievements, ", "), x, b.Y+80, mutedColor)
	}
	c.DrawText(card.entry.Help, x, b.Y+b.H-26, mutedColor)

	drawButton(c, card.play, "Play")
	if card.summary.CanContinue {
		drawButton(c, card.resume, "Continue")
	}
}

func drawButton(c types.Canvas, r rect, label string) {
	c.FillRect(r.X, r.Y, r.W, r.H, buttonFill)
	c.DrawText(label, r.X+(r.W-types.TextWidth(label))/2, r.Y+(r.H-types.GlyphHeight)/2, textColor)
}
