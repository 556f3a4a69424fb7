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
	"github.com/loworbit/ships-mp/game"
	"github.com/loworbit/ships-mp/network"
	"github.com/loworbit/ships-mp/shared/protocol"
)

// shipShape is the fixed local outline every ship is drawn with: vertex
// offsets in normalized units relative to the ship's position, nose up.
var shipShape = [3][2]float64{
	{0, 0.05},
	{-0.035, -0.04},
	{0.035, -0.04},
}

var (
	remoteShipColor = color.RGBA{R: 90, G: 200, B: 255, A: 255}
	localShipColor  = color.RGBA{R: 255, G: 220, B: 90, A: 255}
)

// whiteImage is the texture source for DrawTriangles.
var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// SpaceScene renders the synchronized ships and forwards keyboard input.
// It only ever reads the cache, one snapshot per frame; all mutation happens
// on the channel's read goroutine inside the controller.
type SpaceScene struct {
	sceneChanger SceneChanger
	conf         cfg.Client
	log          *zap.SugaredLogger

	client *network.Client
	ctrl   *game.Controller
	cache  *game.ShipCache
}

// NewSpaceScene wires cache, controller and channel together and starts
// dialing the server.
func NewSpaceScene(sc SceneChanger, conf cfg.Client, log *zap.SugaredLogger) *SpaceScene {
	cache := game.NewShipCache()
	client := network.NewClient(log)
	ctrl := game.NewController(cache, client, log)
	client.Dial(conf.ServerURL, ctrl.HandleEvent)

	return &SpaceScene{
		sceneChanger: sc,
		conf:         conf,
		log:          log,
		client:       client,
		ctrl:         ctrl,
		cache:        cache,
	}
}

func (ss *SpaceScene) Update() {
	if ss.client.State() == network.StateClosed {
		ss.log.Infow("channel closed, back to menu")
		ss.sceneChanger.ChangeScene(NewMenuScene(ss.sceneChanger, ss.conf, ss.log))
		return
	}

	for key, action := range actionKeys {
		if inpututil.IsKeyJustPressed(key) {
			ss.ctrl.SendAction(action)
		}
	}
	if inpututil.IsKeyJustPressed(keyDisconnect) {
		ss.ctrl.Disconnect()
	}
}

func (ss *SpaceScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()
	localID := ss.ctrl.LocalID()

	ships := ss.cache.Snapshot()
	for _, s := range ships {
		clr := remoteShipColor
		if s.ID == localID {
			clr = localShipColor
		}
		drawShip(screen, s, clr, w, h)
	}

	ss.drawStatus(screen, len(ships), localID)
}

func (ss *SpaceScene) drawStatus(screen *ebiten.Image, ships int, localID string) {
	status := fmt.Sprintf("%s | ships: %d", ss.client.State(), ships)
	if localID != "" {
		status += " | you: " + localID
	}
	text.Draw(screen, status, basicfont.Face7x13, 8, 16, color.White)
}

// drawShip fills the ship triangle translated by the ship's normalized
// position, mapped to screen space (x right, y up).
func drawShip(dst *ebiten.Image, s protocol.Ship, clr color.RGBA, w, h int) {
	var vs [3]ebiten.Vertex
	for i, off := range shipShape {
		sx, sy := toScreen(s.X+off[0], s.Y+off[1], w, h)
		vs[i] = ebiten.Vertex{
			DstX:   sx,
			DstY:   sy,
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(clr.R) / 255,
			ColorG: float32(clr.G) / 255,
			ColorB: float32(clr.B) / 255,
			ColorA: 1,
		}
	}
	dst.DrawTriangles(vs[:], []uint16{0, 1, 2}, whiteImage, nil)
}

// toScreen maps a normalized [-1,1] coordinate to pixels.
func toScreen(x, y float64, w, h int) (float32, float32) {
	sx := (x + 1) / 2 * float64(w)
	sy := (1 - y) / 2 * float64(h)
	return float32(sx), float32(sy)
}
