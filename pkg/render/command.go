package render

import "github.com/taigrr/tinyrender/pkg/math3d"

// CommandKind identifies what a Command does.
type CommandKind int

const (
	CommandMoveEye CommandKind = iota
	CommandOrbit
	CommandZoom
	CommandReset
	CommandToggleWireframe
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandMoveEye:
		return "move-eye"
	case CommandOrbit:
		return "orbit"
	case CommandZoom:
		return "zoom"
	case CommandReset:
		return "reset"
	case CommandToggleWireframe:
		return "toggle-wireframe"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a user request delivered to a Pipeline by an input collaborator.
type Command struct {
	Kind CommandKind

	Delta      math3d.Vec3 // CommandMoveEye
	Yaw, Pitch float64     // CommandOrbit, radians
	Factor     float64     // CommandZoom
}

// MoveEye returns a command that offsets the eye by delta.
func MoveEye(delta math3d.Vec3) Command {
	return Command{Kind: CommandMoveEye, Delta: delta}
}

// Orbit returns a command that rotates the eye about the center.
func Orbit(yaw, pitch float64) Command {
	return Command{Kind: CommandOrbit, Yaw: yaw, Pitch: pitch}
}

// Zoom returns a command that scales the eye distance.
func Zoom(factor float64) Command {
	return Command{Kind: CommandZoom, Factor: factor}
}

// Reset returns a command that restores the initial camera.
func Reset() Command { return Command{Kind: CommandReset} }

// ToggleWireframe returns a command that switches between filled and wireframe drawing.
func ToggleWireframe() Command { return Command{Kind: CommandToggleWireframe} }

// Quit returns a command that ends the session.
func Quit() Command { return Command{Kind: CommandQuit} }

// Keymap maps key names to commands. Names follow the terminal convention:
// "a", "up", "+", "escape", "ctrl+c".
type Keymap map[string]Command

const (
	orbitStep = 0.1
	zoomStep  = 0.9
	moveStep  = 0.1
)

// DefaultKeymap returns the bindings shared by the terminal and window viewers.
func DefaultKeymap() Keymap {
	return Keymap{
		"a":      Orbit(-orbitStep, 0),
		"left":   Orbit(-orbitStep, 0),
		"d":      Orbit(orbitStep, 0),
		"right":  Orbit(orbitStep, 0),
		"w":      Orbit(0, orbitStep),
		"up":     Orbit(0, orbitStep),
		"s":      Orbit(0, -orbitStep),
		"down":   Orbit(0, -orbitStep),
		"h":      MoveEye(math3d.V3(-moveStep, 0, 0)),
		"l":      MoveEye(math3d.V3(moveStep, 0, 0)),
		"j":      MoveEye(math3d.V3(0, -moveStep, 0)),
		"k":      MoveEye(math3d.V3(0, moveStep, 0)),
		"+":      Zoom(zoomStep),
		"=":      Zoom(zoomStep),
		"-":      Zoom(1 / zoomStep),
		"_":      Zoom(1 / zoomStep),
		"r":      Reset(),
		"x":      ToggleWireframe(),
		"q":      Quit(),
		"escape": Quit(),
		"ctrl+c": Quit(),
	}
}

// Lookup returns the command bound to key.
func (k Keymap) Lookup(key string) (Command, bool) {
	cmd, ok := k[key]
	return cmd, ok
}
