package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/types"
	"github.com/decker502/arcade/pkg/vmath"
)

// BurstShape 粒子爆发的形状
type BurstShape int

const (
	// BurstScatter 随机方向散开，带向上偏移
	BurstScatter BurstShape = iota
	// BurstRing 沿圆周均匀散开
	BurstRing
	// BurstUp 向上喷射
	BurstUp
)

// BurstOptions 形状化粒子爆发的参数
// 零值字段使用系统配置中的默认值
type BurstOptions struct {
	X, Y  float64
	Color color.RGBA
	// RandomHue 为每个粒子随机色相（忽略 Color）
	RandomHue bool
	Count     int
	Shape     BurstShape
	Speed     float64 // 像素/秒
	Size      float64 // 固定半径，0 表示在配置范围内随机
	Decay     float64
}

// ParticleSystem 管理纯视觉粒子池
//
// 池的容量固定（配置中的 Cap），任何生成请求都只会填充剩余空位，
// 因此 Len() <= Cap() 在任何时刻成立。
type ParticleSystem struct {
	config    config.ParticleConfig
	rng       *rand.Rand
	particles []components.Particle
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(cfg config.ParticleConfig, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		config:    cfg,
		rng:       rng,
		particles: make([]components.Particle, 0, cfg.Cap),
	}
}

// Len 当前粒子数
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Cap 粒子池容量
func (ps *ParticleSystem) Cap() int {
	return ps.config.Cap
}

// Particles 当前粒子（只读视图，下一次 Update 后失效）
func (ps *ParticleSystem) Particles() []components.Particle {
	return ps.particles
}

// Clear 清空粒子池
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

// free 剩余空位
func (ps *ParticleSystem) free() int {
	n := ps.config.Cap - len(ps.particles)
	if n < 0 {
		return 0
	}
	return n
}

func (ps *ParticleSystem) randomSize() float64 {
	return ps.config.MinSize + ps.rng.Float64()*(ps.config.MaxSize-ps.config.MinSize)
}

// Spawn 在 (x, y) 随机散开 count 个粒子，返回实际生成数量
func (ps *ParticleSystem) Spawn(x, y float64, c color.RGBA, count int) int {
	return ps.SpawnBurst(BurstOptions{X: x, Y: y, Color: c, Count: count})
}

// SpawnBurst 按形状生成粒子，返回实际生成数量
func (ps *ParticleSystem) SpawnBurst(opts BurstOptions) int {
	n := opts.Count
	if f := ps.free(); n > f {
		n = f
	}
	if n <= 0 {
		return 0
	}

	speed := opts.Speed
	if speed <= 0 {
		speed = ps.config.Speed
	}
	decay := opts.Decay
	if decay <= 0 {
		decay = ps.config.Decay
	}

	for i := 0; i < n; i++ {
		var vx, vy float64
		switch opts.Shape {
		case BurstRing:
			angle := 2 * math.Pi * float64(i) / float64(n)
			vx = math.Cos(angle) * speed / 2
			vy = math.Sin(angle) * speed / 2
		case BurstUp:
			vx = (ps.rng.Float64() - 0.5) * speed / 2
			vy = -speed/2 - ps.rng.Float64()*speed/2
		default:
			vx = (ps.rng.Float64() - 0.5) * speed
			vy = (ps.rng.Float64()-0.5)*speed - ps.config.Lift
		}

		size := opts.Size
		if size <= 0 {
			size = ps.randomSize()
		}
		c := opts.Color
		if opts.RandomHue {
			c = types.HSL(ps.rng.Float64()*360, 0.7, 0.6)
		}

		ps.particles = append(ps.particles, components.Particle{
			X:       opts.X,
			Y:       opts.Y,
			VX:      vx,
			VY:      vy,
			Life:    1,
			Decay:   decay,
			Size:    size,
			Color:   c,
			Gravity: ps.config.Gravity,
			Drag:    ps.config.Drag,
		})
	}
	return n
}

// SpawnSplat 生成静止的污渍，池满时返回 false
func (ps *ParticleSystem) SpawnSplat(x, y float64, c color.RGBA, size float64) bool {
	if ps.free() == 0 {
		return false
	}
	ps.particles = append(ps.particles, components.Particle{
		X:     x,
		Y:     y,
		Life:  1,
		Decay: ps.config.SplatDecay,
		Size:  size,
		Color: c,
		Drag:  1,
		Splat: true,
	})
	return true
}

// Update 推进所有粒子并移除寿命耗尽的粒子（原地压缩，不分配）
func (ps *ParticleSystem) Update(dt float64) {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.Life -= p.Decay * dt
		if p.Life <= 0 {
			continue
		}
		if !p.Splat {
			p.VY += p.Gravity * dt
			if p.Drag < 1 {
				p.VX *= vmath.FrameFactor(p.Drag, dt)
			}
			p.X += p.VX * dt
			p.Y += p.VY * dt
		}
		alive = append(alive, p)
	}
	ps.particles = alive
}

// Draw 绘制粒子：先绘制污渍，再绘制运动粒子
func (ps *ParticleSystem) Draw(canvas types.Canvas) {
	for _, p := range ps.particles {
		if p.Splat {
			canvas.FillCircle(p.X, p.Y, p.Size, types.Fade(p.Color, p.Life*0.5))
		}
	}
	for _, p := range ps.particles {
		if !p.Splat {
			canvas.FillCircle(p.X, p.Y, p.Size, types.Fade(p.Color, p.Life))
		}
	}
}
