package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

var (
	defaultBackground = color.NRGBA{R: 0x1d, G: 0x22, B: 0x2b, A: 0xff}
	cableColor        = colornames.Lightgrey
	propColor         = colornames.Burlywood
	aimColor          = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
)

func (g *Game) background() color.Color {
	return g.session.Level().Background.ColorOr(defaultBackground)
}

func (g *Game) drawWorld(dst *ebiten.Image) {
	cam := g.camera
	zoom := float32(cam.Zoom())
	lvl := g.session.Level()

	fillBox := func(minX, minZ, maxX, maxZ float64, clr color.Color) {
		x, y := cam.WorldToScreen(minX, maxZ)
		vector.FillRect(dst, float32(x), float32(y), float32(maxX-minX)*zoom, float32(maxZ-minZ)*zoom, clr, false)
	}
	line := func(a, b mgl64.Vec3, width float32, clr color.Color) {
		ax, ay := cam.WorldToScreen(a.X(), a.Z())
		bx, by := cam.WorldToScreen(b.X(), b.Z())
		vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
	}

	for _, b := range lvl.Blocks {
		fillBox(b.MinX, b.MinZ, b.MaxX, b.MaxZ, b.Color.ColorOr(colornames.Slategray))
	}

	for i, m := range g.session.World.Movers() {
		clr := color.Color(colornames.Darkkhaki)
		if i < len(lvl.Movers) {
			clr = lvl.Movers[i].Color.ColorOr(clr)
		}
		p := m.Position()
		w, h := m.Size()
		fillBox(p.X()-w/2, p.Z()-h/2, p.X()+w/2, p.Z()+h/2, clr)
	}

	for _, p := range g.session.Props {
		line(p.Origin(), p.Endpoint(), 2, propColor)
	}

	s := g.session
	muzzle := s.Muzzle()
	if cable := s.Controller.Cable(); cable.Visible {
		line(muzzle, cable.Endpoint, 3, cableColor)
		ex, ey := cam.WorldToScreen(cable.Endpoint.X(), cable.Endpoint.Z())
		vector.FillCircle(dst, float32(ex), float32(ey), 4, colornames.Orange, true)
	} else if g.scenario == nil || g.scenario.Done() {
		line(muzzle, mgl64.Vec3{g.input.AimWorldX, 0, g.input.AimWorldZ}, 1, aimColor)
	}

	// character box plus a facing tick from the swing orientation
	ch := s.Character
	pos := ch.Position()
	w, h := ch.Size()
	bodyColor := colornames.Crimson
	if s.Controller.Boosting() {
		bodyColor = colornames.Orangered
	}
	fillBox(pos.X()-w/2, pos.Z()-h/2, pos.X()+w/2, pos.Z()+h/2, bodyColor)
	fwd := ch.Orientation().Forward
	line(pos, pos.Add(mgl64.Vec3{fwd.X(), 0, fwd.Z()}.Mul(w)), 2, colornames.White)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	x, z := s.Position()
	hud := fmt.Sprintf("state: %s\nspeed: %.0f / %.0f\nfov: %.1f", s.State(), s.Speed(), s.Config().MaxSwingSpeed, s.FOV())
	if s.Controller.Boosting() {
		hud += "  boost"
	}
	if g.debug {
		hud += fmt.Sprintf("\npos: (%.0f, %.0f)\ngrounded: %v\nfps: %.1f", x, z, s.Character.Grounded(), ebiten.ActualFPS())
	}
	if g.scenario != nil {
		hud += fmt.Sprintf("\nscenario: %s", g.scenario.Name())
	}
	if g.status != "" {
		hud += "\n" + g.status
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 10)
	op.LineSpacing = 20
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, hud, g.hudFace, op)
}
