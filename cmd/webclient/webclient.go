//go:build js && wasm

// webclient.go is a WASM web client for the Mandelbrot viewer.
// It connects to the server, draws every frame it receives into the canvas
// and forwards keyboard and mouse input as view commands.

package main

import (
	"context"
	"fmt"
	"log"
	"syscall/js"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelview"
)

// main is the entry point for the WASM web client.
func main() {
	logScreenf("Starting WASM web client...")
	ctx := context.Background()

	// Step 1: Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + host + "/ws"

	// Step 2: Connect to server via WebSocket
	logScreenf("Connecting to Mandelbrot server at %s...", websocketUrl)
	conn, _, err := websocket.Dial(ctx, websocketUrl, nil)
	if err != nil {
		logFatalf("Failed to connect: %v", err)
	}
	logScreenf("WebSocket connected.")

	// Step 3: Read frame dimensions and prepare the canvas
	var hello mandel.Hello
	if err := wsjson.Read(ctx, conn, &hello); err != nil {
		logFatalf("Failed to read hello: %v", err)
	}
	conn.SetReadLimit(int64(hello.Width*hello.Height*4) + 1024)
	logScreenf("Dimensions: %dx%d", hello.Width, hello.Height)
	initCanvas(hello.Width, hello.Height, "#3a3a6e")

	// Step 4: Forward input to the server
	cmds := make(chan mandel.Command, 32)
	bindInput(cmds)
	go func() {
		for cmd := range cmds {
			if err := wsjson.Write(ctx, conn, cmd); err != nil {
				logScreenf("send %s: %v", cmd.Op, err)
				return
			}
		}
	}()

	// Step 5: Draw frames as they arrive
	logScreenf("Waiting for frames...")
	if err := framesLoop(ctx, conn, hello); err != nil {
		logFatalf("framesLoop: %v", err)
	}
}

// logScreenf appends a formatted message to the log element in the DOM,
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

// framesLoop receives frames until the connection fails and draws each of them.
func framesLoop(ctx context.Context, conn *websocket.Conn, hello mandel.Hello) error {
	frames := 0
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}
		if typ != websocket.MessageBinary {
			continue
		}
		img, err := mandel.DecodeFrame(hello, data)
		if err != nil {
			return err
		}
		displayImage(img)

		frames++
		hudSetFrames(frames)
	}
}

// hudSetFrames updates the HUD to show the number of frames received.
func hudSetFrames(frames int) {
	js.Global().Get("document").Call("getElementById", "framesDrawn").Set("textContent", frames)
}
