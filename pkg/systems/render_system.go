package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/game"
)

// 调色板
var (
	colorBackground  = color.RGBA{R: 8, G: 8, B: 24, A: 255}
	colorGround      = color.RGBA{R: 60, G: 45, B: 20, A: 255}
	colorMissile     = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	colorMissileTail = color.RGBA{R: 150, G: 40, B: 40, A: 255}
	colorInterceptor = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	colorExplosion   = color.RGBA{R: 255, G: 200, B: 60, A: 200}
	colorChain       = color.RGBA{R: 255, G: 140, B: 40, A: 200}
	colorImpact      = color.RGBA{R: 200, G: 80, B: 40, A: 200}
	colorTurret      = color.RGBA{R: 120, G: 220, B: 120, A: 255}
	colorCity        = color.RGBA{R: 120, G: 160, B: 255, A: 255}
	colorDestroyed   = color.RGBA{R: 70, G: 70, B: 70, A: 255}
)

// RenderSystem 战场渲染系统
//
// 只消费 BattleSnapshot，不触碰模拟内部状态
// 无图片资源：全部用矢量图形和调试文本绘制
type RenderSystem struct {
	cfg *config.GameConfig
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(cfg *config.GameConfig) *RenderSystem {
	return &RenderSystem{cfg: cfg}
}

// Draw 将快照绘制到屏幕
func (s *RenderSystem) Draw(screen *ebiten.Image, snap BattleSnapshot) {
	screen.Fill(colorBackground)

	// 地面
	vector.DrawFilledRect(screen,
		0, float32(s.cfg.TurretY),
		float32(s.cfg.FieldWidth), float32(s.cfg.FieldHeight-s.cfg.TurretY),
		colorGround, false)

	s.drawCities(screen, snap.Cities)
	s.drawTurrets(screen, snap.Turrets)
	s.drawMissiles(screen, snap.Missiles)
	s.drawInterceptors(screen, snap.Interceptors)
	s.drawExplosions(screen, snap.Explosions)
	s.drawHUD(screen, snap)
}

// drawMissiles 绘制来袭导弹：尾迹线 + 弹头
func (s *RenderSystem) drawMissiles(screen *ebiten.Image, missiles []MissileView) {
	for _, m := range missiles {
		vector.StrokeLine(screen,
			float32(m.StartX), float32(m.StartY),
			float32(m.X), float32(m.Y),
			1, colorMissileTail, false)
		vector.DrawFilledCircle(screen, float32(m.X), float32(m.Y), 3, colorMissile, false)
	}
}

// drawInterceptors 绘制拦截弹：轨迹线 + 弹体 + 目标十字
func (s *RenderSystem) drawInterceptors(screen *ebiten.Image, interceptors []InterceptorView) {
	for _, ic := range interceptors {
		vector.StrokeLine(screen,
			float32(ic.StartX), float32(ic.StartY),
			float32(ic.X), float32(ic.Y),
			1, colorInterceptor, false)
		vector.DrawFilledCircle(screen, float32(ic.X), float32(ic.Y), 2, colorInterceptor, false)

		// 目标点十字标记
		tx, ty := float32(ic.TargetX), float32(ic.TargetY)
		vector.StrokeLine(screen, tx-4, ty, tx+4, ty, 1, colorInterceptor, false)
		vector.StrokeLine(screen, tx, ty-4, tx, ty+4, 1, colorInterceptor, false)
	}
}

// drawExplosions 绘制爆炸圆
func (s *RenderSystem) drawExplosions(screen *ebiten.Image, explosions []ExplosionView) {
	for _, ex := range explosions {
		if ex.Radius <= 0 {
			continue
		}
		clr := colorExplosion
		switch ex.Kind {
		case components.ExplosionChain:
			clr = colorChain
		case components.ExplosionImpact:
			clr = colorImpact
		}
		vector.DrawFilledCircle(screen, float32(ex.X), float32(ex.Y), float32(ex.Radius), clr, false)
	}
}

// drawTurrets 绘制炮台：三角形轮廓 + 弹药数
func (s *RenderSystem) drawTurrets(screen *ebiten.Image, turrets []TurretView) {
	for _, t := range turrets {
		clr := colorTurret
		if t.Destroyed {
			clr = colorDestroyed
		}
		x, y := float32(t.X), float32(t.Y)
		vector.StrokeLine(screen, x-12, y, x, y-16, 2, clr, false)
		vector.StrokeLine(screen, x, y-16, x+12, y, 2, clr, false)
		vector.StrokeLine(screen, x-12, y, x+12, y, 2, clr, false)

		if !t.Destroyed {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", t.Ammo), int(t.X)-8, int(t.Y)+4)
		}
	}
}

// drawCities 绘制城市：小矩形
func (s *RenderSystem) drawCities(screen *ebiten.Image, cities []CityView) {
	for _, c := range cities {
		clr := colorCity
		if c.Destroyed {
			clr = colorDestroyed
		}
		vector.DrawFilledRect(screen, float32(c.X)-10, float32(c.Y)-10, 20, 10, clr, false)
	}
}

// drawHUD 绘制计分板和状态横幅
func (s *RenderSystem) drawHUD(screen *ebiten.Image, snap BattleSnapshot) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d   WAVE %d", snap.Score, snap.WaveNumber), 8, 8)

	if snap.Transitioning {
		ebitenutil.DebugPrintAt(screen, "WAVE COMPLETE", int(s.cfg.FieldWidth)/2-48, int(s.cfg.FieldHeight)/2-40)
	}

	switch snap.Phase {
	case game.PhaseWon:
		ebitenutil.DebugPrintAt(screen, "YOU WIN - PRESS R TO RESTART", int(s.cfg.FieldWidth)/2-100, int(s.cfg.FieldHeight)/2)
	case game.PhaseLost:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - PRESS R TO RESTART", int(s.cfg.FieldWidth)/2-108, int(s.cfg.FieldHeight)/2)
	}
}
