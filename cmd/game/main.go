// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"go-dungeon-defense/internal/app"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/progress"
	"go-dungeon-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	seed := flag.Int64("seed", 0, "random seed for maps and waves (0 = time based)")
	savePath := flag.String("save", "progress.json", "where progression is stored")
	backend := flag.String("store", progress.BackendFile, "progression store: file or leveldb")
	defsPath := flag.String("defs", "", "optional JSON file overriding enemy, structure and upgrade definitions")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
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

	sm := state.NewStateMachine(&state.Session{Game: game, Face: basicfont.Face7x13})
	sm.SetState(state.NewGameState(sm))
	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Dungeon Defense")
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
