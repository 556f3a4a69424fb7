package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/loworbit/ships-mp/config"
	"github.com/loworbit/ships-mp/logging"
	"github.com/loworbit/ships-mp/scenes"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	conf  config.Client
	scene Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return g.conf.Width, g.conf.Height
}

func main() {
	conf, err := config.LoadClient()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(conf.LogFile)
	defer func() { _ = logger.Sync() }()

	g := &Game{conf: conf}
	g.scene = scenes.NewMenuScene(g, conf, logger)

	ebiten.SetWindowSize(conf.Width, conf.Height)
	ebiten.SetWindowTitle("ships")
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatalf("run: %v", err)
	}
}
