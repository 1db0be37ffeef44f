package bugblaster

import (
	"fmt"
	"math"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/types"
)

var (
	powerUpColor   = types.MustHexColor("#fbbf24")
	trapMarkColor  = types.MustHexColor("#ef4444")
	barBackground  = types.MustHexColor("#333333")
	barHealthy     = types.MustHexColor("#10b981")
	barCritical    = types.MustHexColor("#ef4444")
	textColor      = types.MustHexColor("#ffffff")
	crosshairColor = types.MustHexColor("#94a3b8")
)

const (
	bossBarWidth  = 150
	bossBarHeight = 10
	hudMargin     = 10
)

// Draw 实现 engine.Rules：道具 → 虫子 → Boss → 准星
func (g *Game) Draw(w *engine.World, c types.Canvas) {
	now := w.Now()
	g.drawPowerUps(c, now)
	g.drawBugs(c)
	g.drawBoss(w, c, now)
	if g.aiming {
		c.StrokeCircle(g.aimX, g.aimY, 8, 1, crosshairColor)
		c.StrokeLine(g.aimX-12, g.aimY, g.aimX+12, g.aimY, 1, crosshairColor)
		c.StrokeLine(g.aimX, g.aimY-12, g.aimX, g.aimY+12, 1, crosshairColor)
	}
}

func (g *Game) drawPowerUps(c types.Canvas, now float64) {
	pulse := math.Sin(now*5)*5 + 25
	for _, id := range ecs.GetEntitiesWith2[*components.PowerUpComponent, *components.PositionComponent](g.em) {
		pu, _ := ecs.GetComponent[*components.PowerUpComponent](g.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
		alpha := 1.0
		if life, ok := ecs.GetComponent[*components.LifetimeComponent](g.em, id); ok {
			alpha = life.Remaining()
		}
		c.FillCircle(pos.X, pos.Y, pulse/2, types.Fade(powerUpColor, alpha))

		label := powerUpIcon(pu.Kind)
		c.DrawText(label, pos.X-types.TextWidth(label)/2, pos.Y-types.GlyphHeight/2, types.Fade(textColor, alpha))
	}
}

// powerUpIcon 道具的单字母图标
func powerUpIcon(kind types.PowerUpKind) string {
	switch kind {
	case types.PowerUpAutofire:
		return "A"
	case types.PowerUpSlowmo:
		return "S"
	case types.PowerUpShield:
		return "D"
	case types.PowerUpMultishot:
		return "M"
	case types.PowerUpNuke:
		return "N"
	case types.PowerUpFreeze:
		return "F"
	default:
		return "?"
	}
}

func (g *Game) drawBugs(c types.Canvas) {
	for _, id := range ecs.GetEntitiesWith2[*components.BugComponent, *components.PositionComponent](g.em) {
		bug, _ := ecs.GetComponent[*components.BugComponent](g.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
		alpha := g.flash.Alpha(id)

		c.FillCircle(pos.X, pos.Y, bug.Size, types.Fade(bug.Color, alpha))
		if bug.IsTrap() {
			mark := types.Fade(trapMarkColor, alpha)
			c.StrokeLine(pos.X-10, pos.Y-10, pos.X+10, pos.Y+10, 2, mark)
			c.StrokeLine(pos.X+10, pos.Y-10, pos.X-10, pos.Y+10, 2, mark)
		}

		health, ok := ecs.GetComponent[*components.HealthComponent](g.em, id)
		if !ok || health.MaxHealth <= 1 {
			continue
		}
		barW := bug.Size * 2
		barX := pos.X - barW/2
		barY := pos.Y - bug.Size - 10
		c.FillRect(barX, barY, barW, 4, barBackground)
		c.FillRect(barX, barY, health.Ratio()*barW, 4, barHealthy)
	}
}

func (g *Game) drawBoss(w *engine.World, c types.Canvas, now float64) {
	if g.boss == 0 || !g.em.IsAlive(g.boss) {
		return
	}
	boss, _ := ecs.GetComponent[*components.BossComponent](g.em, g.boss)
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, g.boss)
	health, _ := ecs.GetComponent[*components.HealthComponent](g.em, g.boss)

	pulse := 0.0
	if boss.Angry {
		pulse = math.Sin(now*10) * 5
	}
	c.FillCircle(pos.X, pos.Y, boss.Size+pulse, boss.Color)

	barX := w.Bounds.W/2 - bossBarWidth/2
	fill := barHealthy
	if health.CurrentHealth*2 <= health.MaxHealth {
		fill = barCritical
	}
	c.FillRect(barX, 20, bossBarWidth, bossBarHeight, barBackground)
	c.FillRect(barX, 20, math.Max(0, health.Ratio())*bossBarWidth, bossBarHeight, fill)
	c.DrawText("BOSS", w.Bounds.W/2-types.TextWidth("BOSS")/2, 20-types.GlyphHeight-2, textColor)
}

// DrawHUD 实现 engine.Rules：分数、生命、波次、生效中的道具与连击
func (g *Game) DrawHUD(w *engine.World, c types.Canvas) {
	s := w.Session
	c.DrawText(fmt.Sprintf("Score %d  Lives %d  Wave %d", s.Score, s.Lives, s.Wave), hudMargin, hudMargin, textColor)

	x := float64(hudMargin)
	for _, name := range w.Effects.Names() {
		kind, err := types.ParsePowerUpKind(name)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("%s %ds", powerUpIcon(kind), int(math.Ceil(w.Effects.Remaining(name))))
		c.DrawText(label, x, w.Bounds.H-hudMargin-types.GlyphHeight, powerUpColor)
		x += types.TextWidth(label) + hudMargin
	}

	if s.Combo > 1 {
		combo := fmt.Sprintf("%dx COMBO!", s.Combo)
		c.DrawText(combo, w.Bounds.W-hudMargin-types.TextWidth(combo), 40, powerUpColor)
	}
}
