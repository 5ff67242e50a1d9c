// cmd/tdterm/main.go
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"go-dungeon-defense/internal/app"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/progress"
	"go-dungeon-defense/internal/termui"

	"github.com/gdamore/tcell/v2"
)

const frameInterval = time.Second / 30

func main() {
	seed := flag.Int64("seed", 0, "random seed for maps and waves (0 = time based)")
	savePath := flag.String("save", "progress.json", "where progression is stored")
	backend := flag.String("store", progress.BackendFile, "progression store: file or leveldb")
	defsPath := flag.String("defs", "", "optional JSON file overriding enemy, structure and upgrade definitions")
	logPath := flag.String("log", "", "write logs to this file (terminal output is taken by the UI)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	// Терминал занят интерфейсом, поэтому журнал уходит в файл или никуда.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	lib := defs.Default()
	if *defsPath != "" {
		loaded, err := defs.LoadFile(*defsPath)
		if err != nil {
			log.Fatal(err)
		}
		lib = loaded
	}
	store, err := progress.OpenStore(*backend, *savePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	game, err := app.NewGame(app.Options{Seed: *seed, Lib: lib, Store: store})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("main: run %s, seed %d", game.RunID, game.Rng.Seed())

	if !*mute {
		sound := NewSoundManager()
		if err := sound.Initialize(); err != nil {
			log.Printf("main: audio disabled: %v", err)
		} else {
			defer sound.Cleanup()
			game.EventDispatcher.SubscribeAll(sound)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ctl := termui.NewController(game)
	renderer := termui.NewRenderer(screen)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ctl.HandleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt > config.MaxDeltaTime {
				dt = config.MaxDeltaTime
			}
			last = now
			game.Update(dt)
			renderer.Draw(game.Snapshot(), game.HUD(), ctl)
			screen.Show()
		}
	}
}
