package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/grapple/common"
	"github.com/milk9111/grapple/prefabs"
	"github.com/milk9111/grapple/swing"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// NewPauseUI builds the centered pause panel: a live tuning readout and
// buttons to resume, copy the tuning as YAML, replay props and reload the
// level.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	g.readout = widget.NewText(
		widget.TextOpts.Text(tuningReadout(g.cfg), &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	resumeBtn := button("Resume", func() {
		g.paused = false
	})
	copyBtn := button("Copy tuning", func() {
		g.status = g.copyTuning()
	})
	propsBtn := button("Replay rope props", func() {
		g.session.RestartProps()
		g.paused = false
	})
	reloadBtn := button("Reload level", func() {
		if err := g.loadLevel(); err != nil {
			log.Printf("reload level: %v", err)
			g.status = "reload failed, see log"
			return
		}
		g.paused = false
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(g.readout)
	panel.AddChild(resumeBtn)
	panel.AddChild(copyBtn)
	panel.AddChild(propsBtn)
	panel.AddChild(reloadBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func (g *Game) refreshReadout() {
	if g.readout == nil {
		return
	}
	g.readout.Label = tuningReadout(g.session.Config())
}

// copyTuning puts the live swing and character settings on the clipboard in
// swing.yaml form and returns a status line.
func (g *Game) copyTuning() string {
	data, err := prefabs.NewSwingSpec("live", g.session.Config(), g.charCfg).Marshal()
	if err != nil {
		log.Printf("copy tuning: %v", err)
		return "copy failed, see log"
	}
	if err := clipboard.Init(); err != nil {
		// no clipboard (e.g. headless X); dump it where it can still be found
		log.Printf("clipboard unavailable: %v\n%s", err, data)
		return "clipboard unavailable, tuning written to log"
	}
	clipboard.Write(clipboard.FmtText, data)
	return "tuning copied"
}

func tuningReadout(cfg swing.Config) string {
	t := cfg.SwingTuning
	return fmt.Sprintf(
		"max speed %.0f   boost %.0f/s\nfov %.0f -> %.0f at %.1f/s\ngravity %.0f\nswing air control %.2f  gravity scale %.2f",
		cfg.MaxSwingSpeed, cfg.BoostRate,
		cfg.BaseFOV, cfg.MaxFOV, cfg.FOVInterpSpeed,
		cfg.Gravity.Z(),
		t.AirControl, t.GravityScale,
	)
}
