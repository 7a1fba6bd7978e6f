package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// InputSystem samples keyboard, mouse and the first gamepad into every
// Input component.
type InputSystem struct {
	lastCursorX int
	haveCursor  bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX, moveZ := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveZ -= 1
	}
	sprint := ebiten.IsKeyPressed(ebiten.KeyShift)
	interact := inpututil.IsKeyJustPressed(ebiten.KeyE)
	primary := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	crouch := inpututil.IsKeyJustPressed(ebiten.KeyC)
	flashlight := inpututil.IsKeyJustPressed(ebiten.KeyF)
	jump := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	cx, _ := ebiten.CursorPosition()
	lookX := 0.0
	if i.haveCursor {
		lookX = float64(cx - i.lastCursorX)
	}
	i.lastCursorX, i.haveCursor = cx, true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX, moveZ = lx, -ly
		}
		if rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal); math.Abs(rx) > stickDeadzone {
			lookX += rx * 4
		}

		sprint = sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		interact = interact || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		primary = primary || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		crouch = crouch || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		flashlight = flashlight || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		jump = jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveZ = moveZ
		input.LookX = lookX
		input.Sprint = sprint
		input.Interact = interact
		input.Primary = primary
		input.Crouch = crouch
		input.Flashlight = flashlight
		input.Jump = jump
	})
}
