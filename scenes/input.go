package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/loworbit/ships-mp/shared/protocol"
)

// actionKeys maps keyboard keys to outbound move actions. One action is
// produced per physical key press; repeat handling is whatever the host
// provides. It lives here rather than in config so the headless server
// binary never links ebiten.
var actionKeys = map[ebiten.Key]protocol.Action{
	ebiten.KeyArrowUp:    protocol.ActionForward,
	ebiten.KeyArrowRight: protocol.ActionRight,
	ebiten.KeyArrowLeft:  protocol.ActionLeft,
	ebiten.KeyArrowDown:  protocol.ActionBackward,
}

// keyConnect starts a connection from the menu scene.
const keyConnect = ebiten.KeyEnter

// keyDisconnect tears the connection down and returns to the menu.
const keyDisconnect = ebiten.KeyEscape
