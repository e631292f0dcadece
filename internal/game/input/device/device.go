// Package device polls ebiten keyboard, mouse, and gamepad state once per
// frame and turns it into input events.
package device

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/cory-johannsen/shooter/internal/game/character"
	"github.com/cory-johannsen/shooter/internal/game/input"
)

// stickDeadZone ignores small stick drift.
const stickDeadZone = 0.2

// binding is one action and every physical control bound to it.
type binding struct {
	action input.Action
	// hold actions emit started and canceled around the press; others only
	// performed.
	hold  bool
	keys  []ebiten.Key
	mouse []ebiten.MouseButton
	pad   []ebiten.StandardGamepadButton
}

var bindings = []binding{
	{action: input.ActionFire, hold: true, mouse: []ebiten.MouseButton{ebiten.MouseButtonLeft}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontBottomRight}},
	{action: input.ActionAim, hold: true, mouse: []ebiten.MouseButton{ebiten.MouseButtonRight}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontBottomLeft}},
	{action: input.ActionRun, hold: true, keys: []ebiten.Key{ebiten.KeyShiftLeft}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftStick}},
	{action: input.ActionJump, hold: true, keys: []ebiten.Key{ebiten.KeySpace}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom}},
	{action: input.ActionTutorial, hold: true, keys: []ebiten.Key{ebiten.KeyH}},
	{action: input.ActionReload, keys: []ebiten.Key{ebiten.KeyR}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft}},
	{action: input.ActionInspect, keys: []ebiten.Key{ebiten.KeyT}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop}},
	{action: input.ActionHolster, keys: []ebiten.Key{ebiten.KeyY}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight}},
	{action: input.ActionNextWeapon, keys: []ebiten.Key{ebiten.KeyQ}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonFrontTopRight}},
	{action: input.ActionLockCursor, keys: []ebiten.Key{ebiten.KeyEscape}, pad: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonCenterRight}},
}

// Poller converts per-frame device state into input events.
type Poller struct {
	move   character.Vec2
	cursor [2]int
	primed bool
}

// NewPoller creates a Poller.
func NewPoller() *Poller {
	return &Poller{}
}

// Poll returns this frame's events. Call once per ebiten Update.
//
// A press emits started then performed; a release emits canceled. Move is
// emitted when it changes, look every frame the cursor moved.
func (p *Poller) Poll() []input.Event {
	var out []input.Event
	pads := ebiten.AppendGamepadIDs(nil)

	for _, b := range bindings {
		if b.justPressed(pads) {
			if b.hold {
				out = append(out, input.Started(b.action))
			}
			out = append(out, input.Performed(b.action))
		}
		if b.hold && b.justReleased(pads) {
			out = append(out, input.Canceled(b.action))
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		out = append(out, input.Event{
			Action: input.ActionNextWeapon,
			Phase:  input.PhasePerformed,
			Value:  character.Vec2{Y: dy},
		})
	}

	move := readMove(pads)
	if move != p.move {
		if move == (character.Vec2{}) {
			out = append(out, input.Canceled(input.ActionMove))
		} else {
			out = append(out, input.Axis(input.ActionMove, move))
		}
		p.move = move
	}

	cx, cy := ebiten.CursorPosition()
	if p.primed && (cx != p.cursor[0] || cy != p.cursor[1]) {
		out = append(out, input.Axis(input.ActionLook, character.Vec2{
			X: float64(cx - p.cursor[0]),
			Y: float64(p.cursor[1] - cy),
		}))
	}
	p.cursor = [2]int{cx, cy}
	p.primed = true

	return out
}

func (b binding) justPressed(pads []ebiten.GamepadID) bool {
	for _, k := range b.keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	for _, m := range b.mouse {
		if inpututil.IsMouseButtonJustPressed(m) {
			return true
		}
	}
	for _, id := range pads {
		for _, btn := range b.pad {
			if inpututil.IsStandardGamepadButtonJustPressed(id, btn) {
				return true
			}
		}
	}
	return false
}

func (b binding) justReleased(pads []ebiten.GamepadID) bool {
	for _, k := range b.keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	for _, m := range b.mouse {
		if inpututil.IsMouseButtonJustReleased(m) {
			return true
		}
	}
	for _, id := range pads {
		for _, btn := range b.pad {
			if inpututil.IsStandardGamepadButtonJustReleased(id, btn) {
				return true
			}
		}
	}
	return false
}

// readMove combines WASD with the first gamepad's left stick. Y is forward.
func readMove(pads []ebiten.GamepadID) character.Vec2 {
	var v character.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		v.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		v.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		v.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		v.X--
	}
	if len(pads) > 0 {
		id := pads[0]
		sx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		sy := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(sx, sy) > stickDeadZone {
			// Stick up is negative.
			v = character.Vec2{X: sx, Y: -sy}
		}
	}
	return v
}
