package observatory

import "github.com/gdamore/tcell/v2"

// Action is a single input intent applied on the next tick.
type Action int

const (
	ActionNone Action = iota
	ActionN
	ActionS
	ActionE
	ActionW
	ActionNE
	ActionNW
	ActionSE
	ActionSW
	ActionToggleCone
	ActionQuit
)

// dirDeltas maps a movement action to its world-space delta.
var dirDeltas = map[Action][2]int{
	ActionN:  {0, -1},
	ActionS:  {0, 1},
	ActionE:  {1, 0},
	ActionW:  {-1, 0},
	ActionNE: {1, -1},
	ActionNW: {-1, -1},
	ActionSE: {1, 1},
	ActionSW: {-1, 1},
}

// keyToAction maps a key event to an Action, in the teacher's style of
// supporting both arrow keys and vi-style hjkl/diagonals.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionN
	case tcell.KeyDown:
		return ActionS
	case tcell.KeyRight:
		return ActionE
	case tcell.KeyLeft:
		return ActionW
	case tcell.KeyEscape:
		return ActionQuit
	}
	switch ev.Rune() {
	case 'k', 'K', '8':
		return ActionN
	case 'j', 'J', '2':
		return ActionS
	case 'l', 'L', '6':
		return ActionE
	case 'h', 'H', '4':
		return ActionW
	case 'u', 'U', '9':
		return ActionNE
	case 'y', 'Y', '7':
		return ActionNW
	case 'n', 'N', '3':
		return ActionSE
	case 'b', 'B', '1':
		return ActionSW
	case 'v', 'V':
		return ActionToggleCone
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
