package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/undercroft/common"
)

func main() {
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", "undercroft.json", "scene file in levels/")
	seed := flag.Uint64("seed", 0, "footstep random seed (0 picks one)")
	watch := flag.Bool("watch", true, "reload prop scripts when prefabs/ changes on disk")
	mute := flag.Bool("mute", false, "do not open the audio device")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("undercroft")

	game, err := NewGame(gameOptions{
		Scene: *sceneName,
		Debug: *debug,
		Seed:  *seed,
		Watch: *watch,
		Mute:  *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
