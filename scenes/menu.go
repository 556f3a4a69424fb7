// Package scenes holds the ebiten scenes: the menu that starts a connection
// and the space scene that renders the synchronized ships.
package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	cfg "github.com/loworbit/ships-mp/config"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// MenuScene waits for the player to start a connection.
type MenuScene struct {
	sceneChanger SceneChanger
	conf         cfg.Client
	log          *zap.SugaredLogger
}

func NewMenuScene(sc SceneChanger, conf cfg.Client, log *zap.SugaredLogger) *MenuScene {
	return &MenuScene{sceneChanger: sc, conf: conf, log: log}
}

func (ms *MenuScene) Update() {
	if inpututil.IsKeyJustPressed(keyConnect) {
		ms.log.Infow("connecting", "addr", ms.conf.ServerURL)
		ms.sceneChanger.ChangeScene(NewSpaceScene(ms.sceneChanger, ms.conf, ms.log))
	}
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	lines := []string{
		"S H I P S",
		"",
		fmt.Sprintf("server: %s", ms.conf.ServerURL),
		"",
		"enter  - connect",
		"arrows - move",
		"escape - disconnect",
	}
	face := basicfont.Face7x13
	for i, line := range lines {
		text.Draw(screen, line, face, 40, 60+i*20, color.White)
	}
}
