package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/puyo/loop"
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionRestart
	actionResize
)

// handleEvent maps terminal events to intents. Terminals report no key
// releases, so Down switches fast fall on until the pair locks.
func handleEvent(ev tcell.Event, intents *loop.Intents) action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return actionResize
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return actionQuit
		case tcell.KeyLeft:
			intents.Push(loop.IntentLeft)
		case tcell.KeyRight:
			intents.Push(loop.IntentRight)
		case tcell.KeyUp:
			intents.Push(loop.IntentRotate)
		case tcell.KeyDown:
			intents.Push(loop.IntentFastFallOn)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return actionQuit
			case 'r', 'R':
				return actionRestart
			case 'z', 'Z':
				intents.Push(loop.IntentRotate)
			case ' ':
				intents.Push(loop.IntentHardDrop)
			}
		}
	}
	return actionNone
}
