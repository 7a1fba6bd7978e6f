// Command scenetui runs a scene headless and draws it in the terminal.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/undercroft/mixer"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/session"
)

func main() {
	sceneName := flag.String("scene", "undercroft.json", "scene file in levels/")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	seed := flag.Uint64("seed", 1, "footstep random seed")
	logFile := flag.String("log", "scenetui.log", "log file (the terminal is taken by the UI)")
	flag.Parse()

	if f, err := os.Create(*logFile); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	spec, err := prefabs.LoadMixerSpec()
	if err != nil {
		log.Fatal(err)
	}
	mx, err := mixer.New(*spec)
	if err != nil {
		log.Fatal(err)
	}
	sess, err := session.New(session.Options{Scene: *sceneName, Mixer: mx, Seed: *seed})
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	h := newHarness(screen, sess)
	run(h, screen, *tps)
}

func run(h *harness, screen tcell.Screen, tps int) {
	if tps <= 0 {
		tps = 60
	}
	dt := 1.0 / float64(tps)
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	h.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !h.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			h.tick(dt)
			h.draw()
		}
	}
}
