//go:build js && wasm

package main

import (
	"syscall/js"

	mandel "github.com/marben/mandelview"
)

var panKeys = map[string]string{
	"w": "up",
	"a": "left",
	"s": "down",
	"d": "right",
}

// bindInput translates DOM keyboard and mouse events into view commands.
// Handlers never block: when cmds is full the event is dropped.
func bindInput(cmds chan<- mandel.Command) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "myCanvas")

	var cursor mandel.Point
	send := func(c mandel.Command) {
		select {
		case cmds <- c:
		default:
		}
	}

	canvas.Call("addEventListener", "mousemove", js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		cursor = mandel.Point{X: ev.Get("offsetX").Float(), Y: ev.Get("offsetY").Float()}
		return nil
	}))

	doc.Call("addEventListener", "keydown", js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		// held keys repeat; the server only needs the first press
		if ev.Get("repeat").Bool() {
			return nil
		}
		key := ev.Get("key").String()
		if dir, ok := panKeys[key]; ok {
			send(mandel.Command{Op: mandel.OpKeyDown, Dir: dir})
			return nil
		}
		switch key {
		case "e":
			send(mandel.Command{Op: mandel.OpZoomIn, X: cursor.X, Y: cursor.Y})
		case "q":
			send(mandel.Command{Op: mandel.OpZoomOut, X: cursor.X, Y: cursor.Y})
		case "r":
			send(mandel.Command{Op: mandel.OpReset})
		default:
			if len(key) != 1 {
				return nil
			}
			if i := int(key[0]) - '1'; i >= 0 && i < len(mandel.Landmarks) {
				send(mandel.Command{Op: mandel.OpGoTo, Name: mandel.Landmarks[i].Name})
			}
		}
		return nil
	}))

	doc.Call("addEventListener", "keyup", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if dir, ok := panKeys[args[0].Get("key").String()]; ok {
			send(mandel.Command{Op: mandel.OpKeyUp, Dir: dir})
		}
		return nil
	}))
}
