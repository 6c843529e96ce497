package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/grapple/common"
)

func main() {
	debug := flag.Bool("debug", false, "show physics details in the HUD")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", true, "hot reload prefabs/*.yaml and prefabs/scripts on change")
	scenario := flag.String("scenario", "", "autoplay a scenario in prefabs/scripts (basename, .tengo optional)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("grapple")

	game, err := NewGame(gameOptions{debug: *debug, watch: *watch, scenario: *scenario})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
