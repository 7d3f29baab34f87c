package main

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"sepsim/internal/config"
	"sepsim/internal/exclusion"
	"sepsim/internal/logging"
)

// Scene is the ebiten driver. It steps the engine on Update and only reads
// particle state on Draw.
type Scene struct {
	engine  *exclusion.Engine
	logger  *slog.Logger
	palette []particleColors
	width   int
	// pixels per grid cell
	dim float64

	last       exclusion.StepStats
	simTime    float64
	renderTime float64
}

func newScene(engine *exclusion.Engine, cfg *config.Config, logger *slog.Logger) *Scene {
	return &Scene{
		engine:  engine,
		logger:  logger,
		palette: genPalette(len(engine.Particles())),
		width:   cfg.Display.Width,
		dim:     float64(cfg.Display.Width) / float64(engine.Grid().Res),
	}
}

// Update runs at the configured TPS, which paces the simulation.
func (s *Scene) Update() error {
	timer := makeTimer()
	s.last = s.engine.Frame()
	s.simTime = smooth(s.simTime, timer.tick())

	s.logger.Log(context.Background(), logging.LevelTrace, "frame",
		"step", s.engine.StepCount(),
		"accepted", s.last.Accepted,
		"rejected", s.last.Rejected)
	return nil
}

func (s *Scene) Draw(screen *ebiten.Image) {
	timer := makeTimer()
	screen.Fill(color.Black)
	s.drawParticles(screen)
	s.renderTime = smooth(s.renderTime, timer.tick())

	debugInfo := ""
	debugInfo += fmt.Sprintf("FPS: %0.4g\n", ebiten.ActualFPS())
	debugInfo += fmt.Sprintf("Step: %d (moved %d, blocked %d)\n",
		s.engine.StepCount(), s.last.Accepted, s.last.Rejected)
	debugInfo += fmt.Sprintf("Simulation time: %0.5f\n", s.simTime)
	debugInfo += fmt.Sprintf("Render time: %0.5f\n", s.renderTime)
	ebitenutil.DebugPrint(screen, debugInfo)
}

// Each particle is a circle centred in its cell with its current wait
// threshold printed on top.
func (s *Scene) drawParticles(screen *ebiten.Image) {
	face := basicfont.Face7x13
	radius := float32(s.dim * 0.75 / 2)
	for _, p := range s.engine.Particles() {
		pos := p.Position()
		cx := float64(pos.X)*s.dim + 0.5*s.dim
		cy := float64(pos.Y)*s.dim + 0.5*s.dim
		colors := s.palette[p.ID()]

		vector.DrawFilledCircle(screen, float32(cx), float32(cy), radius, colors.fill, true)

		label := fmt.Sprintf("%.2f", p.WaitThreshold())
		bounds := text.BoundString(face, label)
		text.Draw(screen, label, face,
			int(cx)-(bounds.Min.X+bounds.Max.X)/2,
			int(cy)-(bounds.Min.Y+bounds.Max.Y)/2,
			colors.label)
	}
}

func (s *Scene) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return s.width, s.width
}
