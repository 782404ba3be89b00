package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelview"
)

// fetchFrame connects to the server, sends cmds and returns the last frame
// received before the stream went quiet for idle.
func fetchFrame(addr string, cmds []mandel.Command, idle, timeout time.Duration) (*image.RGBA, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	defer c.CloseNow()

	var hello mandel.Hello
	if err := wsjson.Read(ctx, c, &hello); err != nil {
		return nil, fmt.Errorf("read hello: %w", err)
	}
	c.SetReadLimit(int64(hello.Width*hello.Height*4) + 1024)
	log.Printf("Dimensions: %dx%d", hello.Width, hello.Height)

	// the first frame shows the initial view
	last, err := readFrame(ctx, c, hello)
	if err != nil {
		return nil, fmt.Errorf("read initial frame: %w", err)
	}

	for _, cmd := range cmds {
		log.Printf("Sending %s", cmd.Op)
		if err := wsjson.Write(ctx, c, cmd); err != nil {
			return nil, fmt.Errorf("send %s: %w", cmd.Op, err)
		}
	}

	for {
		idleCtx, idleCancel := context.WithTimeout(ctx, idle)
		img, err := readFrame(idleCtx, c, hello)
		quiet := idleCtx.Err() != nil && ctx.Err() == nil
		idleCancel()
		if err != nil {
			// an expired read closes the connection, so the quiet period ends the session
			if quiet {
				return last, nil
			}
			return nil, err
		}
		last = img
	}
}

func readFrame(ctx context.Context, c *websocket.Conn, hello mandel.Hello) (*image.RGBA, error) {
	typ, data, err := c.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageBinary {
		return nil, fmt.Errorf("unexpected %s message", typ)
	}
	return mandel.DecodeFrame(hello, data)
}
